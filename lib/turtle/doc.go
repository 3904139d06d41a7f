// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package turtle is the wire codec between serialized triples and
// in-memory quads. It implements the Turtle subset Podgraph exchanges
// with pod servers: prefix directives, IRIs (relative IRIs resolved
// against the document base), prefixed names, the "a" keyword,
// literals with escapes, language tags, and datatypes, labeled blank
// nodes, and statement continuation with ";" and ",".
//
// Collections and anonymous bracket syntax are not accepted; servers
// Podgraph talks to do not emit them in the representations it
// requests. Serialization emits N-Triples-shaped lines, which are
// themselves valid Turtle.
//
// The codec round-trips quad identity: parsing the serialization of a
// quad set yields an equal quad set (blank node labels excepted, per
// their nature).
package turtle
