// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the Podgraph
// command-line tools.
//
// Configuration is loaded from a single file specified by either the
// PODGRAPH_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. This ensures deterministic, auditable
// configuration with no hidden overrides.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- pod location, identity, HTTP and snapshot settings
//   - [Default] -- returns a Config with usable defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other Podgraph packages except lib/rdf,
// used to validate addresses.
package config
