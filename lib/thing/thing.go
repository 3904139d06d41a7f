// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package thing

import (
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/podgraph-foundation/podgraph/lib/dataset"
	"github.com/podgraph-foundation/podgraph/lib/rdf"
)

// Thing is the projection of a dataset to the quads sharing one
// subject, optionally restricted to one graph. Every quad in Quads has
// Subject as its subject.
//
// A Thing whose subject is a LocalNode is "local": it has no
// resolvable address until the dataset it is set into acquires an
// origin. A Thing whose subject is an IRI is "persisted".
type Thing struct {
	Subject rdf.SubjectTerm
	Graph   rdf.IRI
	Quads   []rdf.Quad
}

// IsLocal reports whether the Thing's subject is a local identifier.
func (t Thing) IsLocal() bool {
	_, local := t.Subject.(rdf.LocalNode)
	return local
}

// NewLocal returns a new empty local Thing with a fresh unique name.
// Names are ULIDs: unique and sortable by creation time, which keeps
// generated names readable in logs and diffs.
func NewLocal() Thing {
	return NewLocalNamed(ulid.Make().String())
}

// NewLocalNamed returns a new empty local Thing with the given name.
// The caller is responsible for keeping the name unique within the
// dataset the Thing is set into.
func NewLocalNamed(name string) Thing {
	return Thing{Subject: rdf.LocalNode{Name: name}}
}

// New returns a new empty persisted Thing at the given address.
// A malformed address fails with *rdf.InvalidIRIError.
func New(address string) (Thing, error) {
	iri, err := rdf.ParseIRI(address)
	if err != nil {
		return Thing{}, err
	}
	return Thing{Subject: iri}, nil
}

// Get extracts the Thing for the given subject from any graph of the
// dataset. Returns ok=false when no quad has that subject. Extraction
// uses the dataset's origin context, so a local subject can be fetched
// by its resolved address once the dataset has an origin.
func Get(ds *dataset.Dataset, subject rdf.SubjectTerm) (Thing, bool) {
	return fromMatch(ds.Match(subject, nil, nil), subject, "")
}

// GetInGraph is Get restricted to a single graph. The zero IRI selects
// the default graph.
func GetInGraph(ds *dataset.Dataset, subject rdf.SubjectTerm, graph rdf.IRI) (Thing, bool) {
	return fromMatch(ds.MatchGraph(subject, nil, nil, graph), subject, graph)
}

func fromMatch(matched *dataset.Dataset, subject rdf.SubjectTerm, graph rdf.IRI) (Thing, bool) {
	if matched.Len() == 0 {
		return Thing{}, false
	}
	return Thing{Subject: subject, Graph: graph, Quads: matched.Quads()}, true
}

// All partitions the dataset's quads by distinct subject, returning
// one Thing per addressable subject (IRI or local node) in the order
// subjects were first encountered. Quads with blank-node subjects have
// no address to project under and are excluded.
func All(ds *dataset.Dataset) []Thing {
	return partition(ds.Quads(), nil)
}

// AllInGraph is All restricted to a single graph. The zero IRI selects
// the default graph.
func AllInGraph(ds *dataset.Dataset, graph rdf.IRI) []Thing {
	return partition(ds.MatchGraph(nil, nil, nil, graph).Quads(), &graph)
}

func partition(quads []rdf.Quad, graph *rdf.IRI) []Thing {
	bySubject := map[rdf.SubjectTerm]int{}
	var things []Thing

	for _, q := range quads {
		switch q.Subject.(type) {
		case rdf.IRI, rdf.LocalNode:
		default:
			continue
		}
		idx, seen := bySubject[q.Subject]
		if !seen {
			idx = len(things)
			bySubject[q.Subject] = idx
			th := Thing{Subject: q.Subject}
			if graph != nil {
				th.Graph = *graph
			}
			things = append(things, th)
		}
		things[idx].Quads = append(things[idx].Quads, q)
	}
	return things
}

// Set writes a Thing into the dataset: every existing quad with the
// Thing's subject is removed, then the Thing's quads are added back,
// each step reconciled through the change log. When the Thing is local
// and the dataset has origin info, the local identifier is resolved to
// its persisted form before storage, so a locally-created Thing set
// into an already-persisted dataset lands under its stable address.
func Set(ds *dataset.Dataset, t Thing) (*dataset.Dataset, error) {
	if t.Subject == nil {
		return nil, &InvalidThingError{Reason: "thing has no subject"}
	}

	subject := t.Subject
	source := ds.Source()
	if local, isLocal := subject.(rdf.LocalNode); isLocal && !source.IsZero() {
		resolved, err := local.ResolveIn(source)
		if err != nil {
			return nil, err
		}
		subject = resolved
	}

	result := Remove(ds, t.Subject)
	for _, q := range t.Quads {
		q.Subject = subject
		if localObject, isLocal := q.Object.(rdf.LocalNode); isLocal && !source.IsZero() {
			resolvedObject, err := localObject.ResolveIn(source)
			if err != nil {
				return nil, err
			}
			q.Object = resolvedObject
		}
		result = result.AddQuad(q)
	}
	return result, nil
}

// Remove returns a new Dataset without any quad whose subject equals
// the target (context-aware under the dataset's origin), recording
// each excluded quad as a deletion. Quads with blank-node subjects are
// never touched — removal targets only addressable subjects.
func Remove(ds *dataset.Dataset, subject rdf.SubjectTerm) *dataset.Dataset {
	source := ds.Source()
	result := ds.StartChangeLog()
	for _, q := range ds.Quads() {
		if _, blank := q.Subject.(rdf.BlankNode); blank {
			continue
		}
		if rdf.TermsEqualIn(q.Subject, subject, source) {
			result = result.RemoveQuad(q)
		}
	}
	return result
}

// RemoveThing removes the quads of the given Thing's subject. It is
// Remove addressed by an extracted Thing instead of a bare subject.
func RemoveThing(ds *dataset.Dataset, t Thing) *dataset.Dataset {
	if t.Subject == nil {
		return ds.StartChangeLog()
	}
	return Remove(ds, t.Subject)
}

// InvalidThingError reports a malformed or wrong-shaped Thing passed
// to a mutation operation. This is a programmer error and is surfaced
// immediately, never silently coerced.
type InvalidThingError struct {
	Reason string
}

func (e *InvalidThingError) Error() string {
	return fmt.Sprintf("thing: invalid thing: %s", e.Reason)
}
