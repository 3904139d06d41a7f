// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Podgraph-access resolves the effective access an actor holds on a
// resource. The actor is one of --agent, --group, --public, or
// --authenticated; the result is printed as the granted mode list and
// the universal five-field shape, or as JSON with --json.
//
// An indeterminate result (no governing access control list is
// reachable) is reported as such — it means "cannot know", not
// "denied".
//
// Exit codes:
//
//	0  access resolved (including indeterminate)
//	1  transport error
//	2  bad arguments or configuration
package main
