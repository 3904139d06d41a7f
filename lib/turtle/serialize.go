// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package turtle

import (
	"fmt"
	"strings"

	"github.com/podgraph-foundation/podgraph/lib/rdf"
	"github.com/podgraph-foundation/podgraph/lib/vocab"
)

// Serialize encodes quads as N-Triples-shaped Turtle, one statement
// per line, in quad order. Only default-graph quads can be expressed
// in Turtle; a quad in a named graph is an error. Local nodes must be
// resolved before serialization — a dataset headed for the wire always
// has an origin to resolve against, so an unresolved local node here
// is a caller defect.
func Serialize(quads []rdf.Quad) (string, error) {
	var b strings.Builder
	for _, q := range quads {
		if !q.Graph.IsZero() {
			return "", fmt.Errorf("turtle: cannot serialize quad in named graph %q", q.Graph)
		}
		subject, err := serializeTerm(q.Subject)
		if err != nil {
			return "", err
		}
		object, err := serializeTerm(q.Object)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s <%s> %s .\n", subject, q.Predicate, object)
	}
	return b.String(), nil
}

func serializeTerm(t rdf.Term) (string, error) {
	switch term := t.(type) {
	case rdf.IRI:
		return "<" + string(term) + ">", nil
	case rdf.BlankNode:
		return "_:" + term.ID, nil
	case rdf.Literal:
		return serializeLiteral(term), nil
	case rdf.LocalNode:
		return "", fmt.Errorf("turtle: cannot serialize unresolved local node %q", term.Name)
	default:
		return "", fmt.Errorf("turtle: cannot serialize term %v", t)
	}
}

// serializeLiteral quotes with %q: Go's escapes for quotes,
// backslashes, and control characters coincide with Turtle's string
// escape forms. A plain xsd:string datatype is left implicit.
func serializeLiteral(l rdf.Literal) string {
	switch {
	case l.Language != "":
		return fmt.Sprintf("%q@%s", l.Value, l.Language)
	case !l.Datatype.IsZero() && l.Datatype != vocab.XSDString:
		return fmt.Sprintf("%q^^<%s>", l.Value, l.Datatype)
	default:
		return fmt.Sprintf("%q", l.Value)
	}
}
