// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/podgraph-foundation/podgraph/client"
	"github.com/podgraph-foundation/podgraph/lib/config"
	"github.com/podgraph-foundation/podgraph/lib/dataset"
	"github.com/podgraph-foundation/podgraph/lib/rdf"
	"github.com/podgraph-foundation/podgraph/lib/snapshot"
	"github.com/podgraph-foundation/podgraph/lib/turtle"
	"github.com/podgraph-foundation/podgraph/lib/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("podgraph-fetch %s\n", version.Info())
		return 0
	}

	var configPath string
	var resourceFlag string
	var asJSON bool
	var writeSnapshot bool
	var offline bool
	var verbose bool

	flagSet := pflag.NewFlagSet("podgraph-fetch", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to podgraph.yaml (default: $PODGRAPH_CONFIG)")
	flagSet.StringVar(&resourceFlag, "resource", "", "address of the resource to fetch")
	flagSet.BoolVar(&asJSON, "json", false, "print the dataset as JSON instead of Turtle")
	flagSet.BoolVar(&writeSnapshot, "snapshot", false, "also write the dataset to the snapshot directory")
	flagSet.BoolVar(&offline, "offline", false, "read from the snapshot directory instead of the network")
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
	if writeSnapshot && offline {
		fmt.Fprintln(os.Stderr, "error: --snapshot and --offline are mutually exclusive")
		return 2
	}

	logger := newLogger(verbose)

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	resource, err := rdf.ParseIRI(resourceFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	var ds *dataset.Dataset
	if offline {
		ds, err = snapshot.Read(snapshotPath(cfg, resource))
	} else {
		var podClient *client.Client
		podClient, err = newClient(cfg, logger)
		if err == nil {
			ds, err = podClient.FetchDataset(context.Background(), resource)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if writeSnapshot {
		path := snapshotPath(cfg, resource)
		if err := snapshot.Write(path, ds); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		logger.Debug("wrote snapshot", "path", path)
	}

	if err := printDataset(ds, asJSON); err != nil {
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

// snapshotPath maps a resource address to its file in the snapshot
// directory. Query-escaping makes the address filesystem-safe while
// keeping it recognizable.
func snapshotPath(cfg *config.Config, resource rdf.IRI) string {
	return filepath.Join(cfg.Snapshots.Directory, url.QueryEscape(string(resource))+".snap")
}

// jsonQuad is the JSON shape of one quad in --json output.
type jsonQuad struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
	Graph     string `json:"graph,omitempty"`
}

func printDataset(ds *dataset.Dataset, asJSON bool) error {
	if !asJSON {
		text, err := turtle.Serialize(ds.Quads())
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil
	}

	quads := make([]jsonQuad, 0, ds.Len())
	for _, q := range ds.Quads() {
		quads = append(quads, jsonQuad{
			Subject:   q.Subject.String(),
			Predicate: string(q.Predicate),
			Object:    q.Object.String(),
			Graph:     string(q.Graph),
		})
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(quads)
}
