// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package thing

import (
	"github.com/podgraph-foundation/podgraph/lib/rdf"
)

// Builder-style property helpers. All are value-returning: the
// receiver is never modified, matching the copy-on-write discipline of
// the dataset layer. Changes take effect in a dataset only once the
// Thing is written back with Set.

// With returns a copy of the Thing with a (predicate, object)
// statement added. Duplicate statements are dropped.
func (t Thing) With(predicate rdf.IRI, object rdf.Term) Thing {
	q := rdf.Quad{Subject: t.Subject, Predicate: predicate, Object: object, Graph: t.Graph}
	for _, existing := range t.Quads {
		if rdf.QuadsEqual(existing, q) {
			return t.copied()
		}
	}
	derived := t.copied()
	derived.Quads = append(derived.Quads, q)
	return derived
}

// WithString is With for a plain string literal object.
func (t Thing) WithString(predicate rdf.IRI, value string) Thing {
	return t.With(predicate, rdf.Literal{Value: value})
}

// Without returns a copy of the Thing with every statement matching
// (predicate, object) removed.
func (t Thing) Without(predicate rdf.IRI, object rdf.Term) Thing {
	derived := t.copied()
	derived.Quads = derived.Quads[:0]
	for _, q := range t.Quads {
		if q.Predicate == predicate && rdf.TermsEqual(q.Object, object) {
			continue
		}
		derived.Quads = append(derived.Quads, q)
	}
	return derived
}

// WithoutPredicate returns a copy of the Thing with every statement
// for the given predicate removed.
func (t Thing) WithoutPredicate(predicate rdf.IRI) Thing {
	derived := t.copied()
	derived.Quads = derived.Quads[:0]
	for _, q := range t.Quads {
		if q.Predicate == predicate {
			continue
		}
		derived.Quads = append(derived.Quads, q)
	}
	return derived
}

// Objects returns every object stated for the predicate, in statement
// order.
func (t Thing) Objects(predicate rdf.IRI) []rdf.Term {
	var objects []rdf.Term
	for _, q := range t.Quads {
		if q.Predicate == predicate {
			objects = append(objects, q.Object)
		}
	}
	return objects
}

// IRIs returns the IRI-valued objects stated for the predicate,
// skipping literals, local nodes, and blank nodes.
func (t Thing) IRIs(predicate rdf.IRI) []rdf.IRI {
	var iris []rdf.IRI
	for _, q := range t.Quads {
		if iri, ok := q.Object.(rdf.IRI); ok && q.Predicate == predicate {
			iris = append(iris, iri)
		}
	}
	return iris
}

// HasIRI reports whether the Thing states (predicate, object) with an
// IRI object.
func (t Thing) HasIRI(predicate, object rdf.IRI) bool {
	for _, candidate := range t.IRIs(predicate) {
		if candidate == object {
			return true
		}
	}
	return false
}

// Strings returns the literal-valued objects stated for the predicate
// as raw string values, skipping non-literals.
func (t Thing) Strings(predicate rdf.IRI) []string {
	var values []string
	for _, q := range t.Quads {
		if lit, ok := q.Object.(rdf.Literal); ok && q.Predicate == predicate {
			values = append(values, lit.Value)
		}
	}
	return values
}

func (t Thing) copied() Thing {
	derived := t
	derived.Quads = append([]rdf.Quad(nil), t.Quads...)
	return derived
}
