// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Podgraph's standard CBOR encoding configuration.
//
// Podgraph uses two serialization formats with a clear boundary:
//
//   - Turtle for wire exchanges with pods: fetched representations,
//     PUT bodies, and container creation payloads.
//   - CBOR for local persistence: snapshot records written by the
//     snapshot package and any future on-disk state.
//
// This package provides the shared CBOR encoding and decoding modes so
// that every Podgraph package encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes, which is what lets snapshot files carry a stable integrity
// hash over their payload.
//
// For buffer-oriented operations (files):
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
package codec
