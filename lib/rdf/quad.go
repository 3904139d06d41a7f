// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package rdf

import "strings"

// Quad is one (subject, predicate, object, graph) statement. A zero
// Graph means the default graph.
type Quad struct {
	Subject   SubjectTerm
	Predicate IRI
	Object    Term
	Graph     IRI
}

// TermsEqual compares two terms without a resource context. Local nodes
// are equal only to local nodes with the same name; blank nodes only to
// the same blank node; literals by value, datatype, and language.
func TermsEqual(a, b Term) bool {
	return TermsEqualIn(a, b, "")
}

// TermsEqualIn compares two terms under an optional resource address
// context. Under a non-zero context R, a local node named "n" equals
// the IRI R#n (and vice versa). The context must be a well-formed
// address; under a malformed or zero context local nodes never equal
// IRIs.
func TermsEqualIn(a, b Term, resource IRI) bool {
	switch at := a.(type) {
	case IRI:
		switch bt := b.(type) {
		case IRI:
			return at == bt
		case LocalNode:
			return localEqualsIRI(bt, at, resource)
		}
	case LocalNode:
		switch bt := b.(type) {
		case LocalNode:
			return at.Name == bt.Name
		case IRI:
			return localEqualsIRI(at, bt, resource)
		}
	case BlankNode:
		bt, ok := b.(BlankNode)
		return ok && at.ID == bt.ID
	case Literal:
		bt, ok := b.(Literal)
		return ok && at == bt
	case nil:
		return b == nil
	}
	return false
}

func localEqualsIRI(n LocalNode, iri IRI, resource IRI) bool {
	if resource.IsZero() {
		return false
	}
	resolved, err := Resolve(n.Name, resource)
	if err != nil {
		return false
	}
	return resolved == iri
}

// QuadsEqual compares two quads component-wise without a resource
// context.
func QuadsEqual(a, b Quad) bool {
	return QuadsEqualIn(a, b, "")
}

// QuadsEqualIn compares two quads component-wise, using context-aware
// term equality for subject and object. Predicates and graphs are
// always persisted identifiers and compare directly.
func QuadsEqualIn(a, b Quad, resource IRI) bool {
	return a.Predicate == b.Predicate &&
		a.Graph == b.Graph &&
		TermsEqualIn(a.Subject, b.Subject, resource) &&
		TermsEqualIn(a.Object, b.Object, resource)
}

// ParentContainer returns the container holding the given resource, by
// stripping the final path segment (and any fragment or query). A
// container address ends in "/"; its parent is the container one level
// up. Returns ok=false at the root ("https://pod/") or when the
// address has no path hierarchy to walk.
func ParentContainer(resource IRI) (IRI, bool) {
	address := string(resource.WithoutFragment())
	if idx := strings.IndexByte(address, '?'); idx >= 0 {
		address = address[:idx]
	}

	schemeEnd := strings.Index(address, "://")
	if schemeEnd < 0 {
		return "", false
	}
	hostStart := schemeEnd + len("://")
	pathStart := strings.IndexByte(address[hostStart:], '/')
	if pathStart < 0 {
		// No path at all: "https://pod" has no parent.
		return "", false
	}
	root := address[:hostStart+pathStart+1]

	path := strings.TrimSuffix(address, "/")
	if path == strings.TrimSuffix(root, "/") {
		return "", false
	}
	idx := strings.LastIndexByte(path, '/')
	parent := path[:idx+1]
	if len(parent) < len(root) {
		return "", false
	}
	return IRI(parent), true
}
