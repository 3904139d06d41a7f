// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package rdf

import (
	"fmt"
	"net/url"
	"strings"
)

// Term is one node of a quad: an IRI, a local node, a blank node, or a
// literal. The interface is sealed — the four concrete types in this
// package are the only implementations.
type Term interface {
	fmt.Stringer

	// isTerm marks the closed sum. Unexported so no outside type can
	// satisfy Term.
	isTerm()
}

// SubjectTerm is a term that may appear in subject position: an IRI, a
// local node, or a blank node. Literals cannot be subjects.
type SubjectTerm interface {
	Term

	isSubjectTerm()
}

// IRI is a persisted identifier: an absolute address, optionally with a
// fragment. The zero value is "no IRI" — used for the default graph and
// for absent optional fields. Construct validated values with
// [ParseIRI]; a raw conversion bypasses validation and is reserved for
// compile-time constants known to be well-formed (see lib/vocab).
type IRI string

func (IRI) isTerm()        {}
func (IRI) isSubjectTerm() {}

// String returns the address.
func (i IRI) String() string { return string(i) }

// IsZero reports whether this is the zero IRI.
func (i IRI) IsZero() bool { return i == "" }

// ParseIRI validates s as an absolute IRI and returns it. The address
// must parse, carry a scheme, and — for hierarchical schemes — a host.
// Malformed input fails with *InvalidIRIError.
func ParseIRI(s string) (IRI, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return "", &InvalidIRIError{Value: s, Reason: err.Error()}
	}
	if parsed.Scheme == "" {
		return "", &InvalidIRIError{Value: s, Reason: "missing scheme"}
	}
	if (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host == "" {
		return "", &InvalidIRIError{Value: s, Reason: "missing host"}
	}
	return IRI(s), nil
}

// WithoutFragment returns the IRI with any fragment removed.
func (i IRI) WithoutFragment() IRI {
	if idx := strings.IndexByte(string(i), '#'); idx >= 0 {
		return i[:idx]
	}
	return i
}

// Fragment returns the fragment part of the IRI, without the leading
// "#", or "" if there is none.
func (i IRI) Fragment() string {
	if idx := strings.IndexByte(string(i), '#'); idx >= 0 {
		return string(i[idx+1:])
	}
	return ""
}

// LocalNode is a local identifier: a placeholder for a subject or
// object that has not yet been assigned an address. The name is opaque
// and unique within one dataset. Once the dataset acquires an origin
// address R, a local node named "n" resolves to R#n.
type LocalNode struct {
	Name string
}

func (LocalNode) isTerm()        {}
func (LocalNode) isSubjectTerm() {}

// String returns the name with a distinguishing prefix for logging.
// This is a display form, not an address.
func (n LocalNode) String() string { return "_local:" + n.Name }

// ResolveIn resolves the local node against a resource address,
// yielding the persisted identifier it will be stored under.
func (n LocalNode) ResolveIn(base IRI) (IRI, error) {
	return Resolve(n.Name, base)
}

// BlankNode is an anonymous node: it has identity within one parse of a
// document but no address, and a fresh identity on every re-parse.
// Blank nodes compare equal only to themselves (same ID), except under
// the change-log reconciliation rule in lib/dataset.
type BlankNode struct {
	ID string
}

func (BlankNode) isTerm()        {}
func (BlankNode) isSubjectTerm() {}

// String returns the blank node in N-Triples label form.
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal is a value with either a datatype address or a language tag.
// A literal with a language tag has datatype rdf:langString by
// convention; a literal with neither is a plain xsd:string.
type Literal struct {
	Value    string
	Datatype IRI
	Language string
}

func (Literal) isTerm() {}

// String returns the literal in an N-Triples-shaped display form.
func (l Literal) String() string {
	switch {
	case l.Language != "":
		return fmt.Sprintf("%q@%s", l.Value, l.Language)
	case !l.Datatype.IsZero():
		return fmt.Sprintf("%q^^<%s>", l.Value, l.Datatype)
	default:
		return fmt.Sprintf("%q", l.Value)
	}
}

// Resolve turns (name, base) into the persisted identifier base#name,
// stripping any existing fragment from base first. A malformed base
// fails with *InvalidIRIError.
func Resolve(name string, base IRI) (IRI, error) {
	validated, err := ParseIRI(string(base))
	if err != nil {
		return "", err
	}
	return validated.WithoutFragment() + IRI("#"+name), nil
}

// InvalidIRIError reports a malformed address passed to identifier
// construction or resolution. It is fatal to the single call and never
// recoverable by retry.
type InvalidIRIError struct {
	// Value is the offending address.
	Value string
	// Reason describes the defect.
	Reason string
}

func (e *InvalidIRIError) Error() string {
	return fmt.Sprintf("rdf: invalid IRI %q: %s", e.Value, e.Reason)
}
