// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package client is the HTTP surface of Podgraph: fetching remote
// resources into datasets, writing datasets back (full or
// incremental), creating resources inside containers, and probing the
// Link headers that advertise a resource's governing access list.
//
// The client performs one request/response exchange per operation.
// Retry and backoff policy belong to the caller; a non-success status
// is surfaced as a *StatusError carrying the code and response body,
// and the caller decides whether to try again.
//
// Write protocol: the first write of a dataset (no origin info) is a
// full PUT of the serialized quads with If-None-Match: * guarding
// against overwriting a resource that turned out to exist. A dataset
// fetched from the target address with a non-empty change log is
// written incrementally as a PATCH of application/sparql-update with
// DELETE DATA / INSERT DATA clauses built from the log.
package client
