// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package rdf defines the term and quad types shared by every Podgraph
// package, plus the identifier utilities built on them: classification
// of a term as persisted (IRI), local (not yet assigned an address),
// literal, or anonymous; resolution of a local name against a resource
// address; and context-aware term equality.
//
// The term types form a closed sum. [IRI], [LocalNode], [BlankNode],
// and [Literal] are the only implementations of [Term], and the first
// three are the only implementations of [SubjectTerm]. Code that needs
// to branch on term kind switches on the concrete type rather than
// probing for field presence.
//
// Local identifiers are contextual: a [LocalNode] named "n" is equal to
// the IRI "https://pod/resource#n" only when the comparison is made
// under the resource address "https://pod/resource" (see [TermsEqualIn]).
// Without that context a local node never equals an IRI, however
// textually similar.
package rdf
