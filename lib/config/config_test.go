// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.HTTP.Timeout != "30s" {
		t.Errorf("expected timeout=30s, got %s", cfg.HTTP.Timeout)
	}
	if cfg.Snapshots.Directory == "" {
		t.Error("expected a default snapshot directory")
	}
	if cfg.Pod.BaseURL != "" {
		t.Errorf("base_url must have no default, got %s", cfg.Pod.BaseURL)
	}
}

func TestLoad_RequiresPodgraphConfig(t *testing.T) {
	origConfig := os.Getenv("PODGRAPH_CONFIG")
	defer os.Setenv("PODGRAPH_CONFIG", origConfig)

	os.Unsetenv("PODGRAPH_CONFIG")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when PODGRAPH_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "PODGRAPH_CONFIG environment variable not set") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestLoad_WithPodgraphConfig(t *testing.T) {
	origConfig := os.Getenv("PODGRAPH_CONFIG")
	defer os.Setenv("PODGRAPH_CONFIG", origConfig)

	configPath := filepath.Join(t.TempDir(), "podgraph.yaml")
	configContent := `
pod:
  base_url: https://alice.pod.example/
  webid: https://alice.pod.example/profile#me
http:
  timeout: 10s
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Setenv("PODGRAPH_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pod.BaseURL != "https://alice.pod.example/" {
		t.Errorf("base_url = %s", cfg.Pod.BaseURL)
	}
	if cfg.Pod.WebID != "https://alice.pod.example/profile#me" {
		t.Errorf("webid = %s", cfg.Pod.WebID)
	}
	if cfg.HTTP.Timeout != "10s" {
		t.Errorf("timeout = %s, want the file's 10s", cfg.HTTP.Timeout)
	}
	if cfg.Snapshots.Directory == "" {
		t.Error("defaults should survive a file that does not mention them")
	}
}

func TestLoadFileExpandsVariables(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "podgraph.yaml")
	configContent := `
pod:
  base_url: https://alice.pod.example/
  token_file: ${HOME}/.podgraph-token
snapshots:
  directory: ${PODGRAPH_SNAPDIR:-/tmp/podgraph-snapshots}
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if strings.Contains(cfg.Pod.TokenFile, "${") {
		t.Errorf("token_file not expanded: %s", cfg.Pod.TokenFile)
	}
	if cfg.Snapshots.Directory != "/tmp/podgraph-snapshots" {
		t.Errorf("directory = %s, want the ${VAR:-default} fallback", cfg.Snapshots.Directory)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Pod.BaseURL = "https://alice.pod.example/"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.Pod.BaseURL = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "pod.base_url is required") {
		t.Errorf("missing base_url not reported: %v", err)
	}

	cfg.Pod.BaseURL = "not a url"
	cfg.Pod.WebID = "also wrong"
	cfg.HTTP.Timeout = "soonish"
	err = cfg.Validate()
	if err == nil {
		t.Fatal("invalid config accepted")
	}
	for _, want := range []string{"pod.base_url", "pod.webid", "http.timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error %q does not mention %s", err.Error(), want)
		}
	}
}

func TestTimeout(t *testing.T) {
	cfg := Default()
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %s, want 30s", cfg.Timeout())
	}
	cfg.HTTP.Timeout = "2m"
	if cfg.Timeout() != 2*time.Minute {
		t.Errorf("Timeout() = %s, want 2m", cfg.Timeout())
	}
	cfg.HTTP.Timeout = "garbage"
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %s, want the 30s fallback", cfg.Timeout())
	}
}

func TestBearerToken(t *testing.T) {
	cfg := Default()
	token, err := cfg.BearerToken()
	if err != nil || token != "" {
		t.Errorf("BearerToken() without a file = %q, %v; want empty, nil", token, err)
	}

	tokenPath := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenPath, []byte("secret-token\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.Pod.TokenFile = tokenPath
	token, err = cfg.BearerToken()
	if err != nil {
		t.Fatalf("BearerToken: %v", err)
	}
	if token != "secret-token" {
		t.Errorf("BearerToken() = %q, want trimmed contents", token)
	}

	cfg.Pod.TokenFile = filepath.Join(t.TempDir(), "absent")
	if _, err := cfg.BearerToken(); err == nil {
		t.Error("BearerToken with a missing file should fail")
	}
}
