// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Podgraph-fetch reads a resource from a pod and prints its dataset,
// as Turtle by default or as JSON with --json. With --snapshot the
// fetched dataset is also written to the configured snapshot
// directory; with --offline the network is not touched and the
// dataset is read from the snapshot written by an earlier run.
//
// Exit codes:
//
//	0  dataset printed
//	1  fetch or snapshot error
//	2  bad arguments or configuration
package main
