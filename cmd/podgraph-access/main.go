// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/podgraph-foundation/podgraph/client"
	"github.com/podgraph-foundation/podgraph/lib/access"
	"github.com/podgraph-foundation/podgraph/lib/acl"
	"github.com/podgraph-foundation/podgraph/lib/config"
	"github.com/podgraph-foundation/podgraph/lib/rdf"
	"github.com/podgraph-foundation/podgraph/lib/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("podgraph-access %s\n", version.Info())
		return 0
	}

	var configPath string
	var resourceFlag string
	var agentFlag string
	var groupFlag string
	var public bool
	var authenticated bool
	var asJSON bool
	var verbose bool

	flagSet := pflag.NewFlagSet("podgraph-access", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to podgraph.yaml (default: $PODGRAPH_CONFIG)")
	flagSet.StringVar(&resourceFlag, "resource", "", "address of the resource to query")
	flagSet.StringVar(&agentFlag, "agent", "", "WebID of the agent to query (default: the configured webid)")
	flagSet.StringVar(&groupFlag, "group", "", "group listing address to query")
	flagSet.BoolVar(&public, "public", false, "query access granted to everyone")
	flagSet.BoolVar(&authenticated, "authenticated", false, "query access granted to all logged-in actors")
	flagSet.BoolVar(&asJSON, "json", false, "print the result as JSON")
	flagSet.BoolVar(&verbose, "verbose", false, "enable debug logging")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	if resourceFlag == "" {
		fmt.Fprintln(os.Stderr, "error: --resource is required")
		flagSet.Usage()
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	actors := 0
	if agentFlag != "" {
		actors++
	}
	if groupFlag != "" {
		actors++
	}
	if public {
		actors++
	}
	if authenticated {
		actors++
	}
	if actors == 0 && cfg.Pod.WebID != "" {
		agentFlag = cfg.Pod.WebID
		actors = 1
	}
	if actors != 1 {
		fmt.Fprintln(os.Stderr, "error: exactly one of --agent, --group, --public, --authenticated is required")
		return 2
	}

	resource, err := rdf.ParseIRI(resourceFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	logger := newLogger(verbose)
	podClient, err := newClient(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	ctx := context.Background()
	var modes *acl.Modes
	var actor string
	switch {
	case agentFlag != "":
		agent, err := rdf.ParseIRI(agentFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
		actor = "agent " + string(agent)
		modes, err = acl.AgentAccess(ctx, podClient, resource, agent)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	case groupFlag != "":
		group, err := rdf.ParseIRI(groupFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
		actor = "group " + string(group)
		modes, err = acl.GroupAccess(ctx, podClient, resource, group)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	case public:
		actor = "public"
		modes, err = acl.PublicAccess(ctx, podClient, resource)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	default:
		actor = "authenticated"
		modes, err = acl.AuthenticatedAccess(ctx, podClient, resource)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	}

	if err := printResult(resource, actor, modes, asJSON); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newClient(cfg *config.Config, logger *slog.Logger) (*client.Client, error) {
	token, err := cfg.BearerToken()
	if err != nil {
		return nil, err
	}
	return client.New(client.Config{
		HTTPClient:  &http.Client{Timeout: cfg.Timeout()},
		Logger:      logger,
		BearerToken: token,
	}), nil
}

// jsonResult is the --json output shape.
type jsonResult struct {
	Resource      string  `json:"resource"`
	Actor         string  `json:"actor"`
	Indeterminate bool    `json:"indeterminate"`
	Read          bool    `json:"read"`
	Append        bool    `json:"append"`
	Write         bool    `json:"write"`
	Control       bool    `json:"control"`
	Universal     *shaped `json:"universal,omitempty"`
}

type shaped struct {
	Read         string `json:"read"`
	Append       string `json:"append"`
	Write        string `json:"write"`
	ControlRead  string `json:"controlRead"`
	ControlWrite string `json:"controlWrite"`
}

func printResult(resource rdf.IRI, actor string, modes *acl.Modes, asJSON bool) error {
	if asJSON {
		result := jsonResult{
			Resource:      string(resource),
			Actor:         actor,
			Indeterminate: modes == nil,
		}
		if modes != nil {
			result.Read = modes.Read
			result.Append = modes.Append
			result.Write = modes.Write
			result.Control = modes.Control
			universal := access.FromModes(*modes)
			result.Universal = &shaped{
				Read:         universal.Read.String(),
				Append:       universal.Append.String(),
				Write:        universal.Write.String(),
				ControlRead:  universal.ControlRead.String(),
				ControlWrite: universal.ControlWrite.String(),
			}
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	if modes == nil {
		fmt.Printf("%s on %s: indeterminate (no governing access control list reachable)\n", actor, resource)
		return nil
	}
	fmt.Printf("%s on %s:\n", actor, resource)
	fmt.Printf("  modes: read=%t append=%t write=%t control=%t\n",
		modes.Read, modes.Append, modes.Write, modes.Control)
	universal := access.FromModes(*modes)
	fmt.Printf("  universal: read=%s append=%s write=%s controlRead=%s controlWrite=%s\n",
		universal.Read, universal.Append, universal.Write, universal.ControlRead, universal.ControlWrite)
	return nil
}
