// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"github.com/podgraph-foundation/podgraph/lib/rdf"
)

// Dataset is an insertion-ordered set of quads. The zero value is not
// usable; construct with [New] or derive from an existing Dataset.
//
// A Dataset optionally carries origin info (the address it was fetched
// from) and a change log (the delta against the last known server
// state). A Dataset with no origin never has meaningful change-log
// semantics for persistence — there is nothing to diff against — but
// the log is still tracked so that stamping an origin later yields a
// correct delta.
type Dataset struct {
	quads  []rdf.Quad
	origin *Origin
	log    *ChangeLog
}

// Origin records where a Dataset's quads were fetched from.
type Origin struct {
	// Source is the address of the resource this Dataset represents.
	Source rdf.IRI
}

// ChangeLog is the recorded delta between a Dataset and the last known
// state of its origin: quads added and quads removed, in operation
// order.
type ChangeLog struct {
	Additions []rdf.Quad
	Deletions []rdf.Quad
}

// IsEmpty reports whether the log records no changes.
func (l *ChangeLog) IsEmpty() bool {
	return l == nil || (len(l.Additions) == 0 && len(l.Deletions) == 0)
}

func (l *ChangeLog) clone() *ChangeLog {
	if l == nil {
		return nil
	}
	cloned := &ChangeLog{}
	if len(l.Additions) > 0 {
		cloned.Additions = append([]rdf.Quad(nil), l.Additions...)
	}
	if len(l.Deletions) > 0 {
		cloned.Deletions = append([]rdf.Quad(nil), l.Deletions...)
	}
	return cloned
}

// New constructs a Dataset from the given quads, dropping exact
// duplicates. The result has no origin and no change log.
func New(quads ...rdf.Quad) *Dataset {
	ds := &Dataset{}
	for _, q := range quads {
		if !ds.containsExact(q) {
			ds.quads = append(ds.quads, q)
		}
	}
	return ds
}

// Quads returns a copy of the dataset's quads in insertion order.
func (ds *Dataset) Quads() []rdf.Quad {
	return append([]rdf.Quad(nil), ds.quads...)
}

// Len returns the number of quads.
func (ds *Dataset) Len() int { return len(ds.quads) }

// Origin returns the dataset's origin info, or nil if the dataset was
// never fetched from (or saved to) an address.
func (ds *Dataset) Origin() *Origin {
	if ds.origin == nil {
		return nil
	}
	copied := *ds.origin
	return &copied
}

// Source returns the origin address, or the zero IRI when the dataset
// has no origin.
func (ds *Dataset) Source() rdf.IRI {
	if ds.origin == nil {
		return ""
	}
	return ds.origin.Source
}

// ChangeLog returns a copy of the dataset's change log, or nil when no
// log has been started.
func (ds *Dataset) ChangeLog() *ChangeLog {
	return ds.log.clone()
}

// Contains reports whether the dataset holds a quad equal to q under
// the dataset's origin context (context-aware equality: a local node
// and its resolved IRI match when the origin is known).
func (ds *Dataset) Contains(q rdf.Quad) bool {
	for _, existing := range ds.quads {
		if rdf.QuadsEqualIn(existing, q, ds.Source()) {
			return true
		}
	}
	return false
}

// containsExact checks set membership without the origin context. Used
// when building datasets, where textual identity is what de-duplicates.
func (ds *Dataset) containsExact(q rdf.Quad) bool {
	for _, existing := range ds.quads {
		if rdf.QuadsEqual(existing, q) {
			return true
		}
	}
	return false
}

// WithOrigin returns a new Dataset with origin info stamped. The quads
// and change log are carried over unchanged.
func (ds *Dataset) WithOrigin(source rdf.IRI) *Dataset {
	derived := ds.shallowCopy()
	derived.origin = &Origin{Source: source}
	return derived
}

// StartChangeLog returns a new Dataset carrying an empty change log.
// If the dataset already has a log it is preserved as-is.
func (ds *Dataset) StartChangeLog() *Dataset {
	if ds.log != nil {
		return ds
	}
	derived := ds.shallowCopy()
	derived.log = &ChangeLog{}
	return derived
}

// ResetChangeLog returns a new Dataset whose change log is empty.
// Called after a successful save, when the dataset once again matches
// server state.
func (ds *Dataset) ResetChangeLog() *Dataset {
	derived := ds.shallowCopy()
	derived.log = &ChangeLog{}
	return derived
}

// Match returns a new Dataset holding the quads that match the given
// terms in any graph. A nil term is a wildcard. Matching uses the
// dataset's origin context, so a local node pattern matches its
// resolved IRI and vice versa. Origin info is carried to the result;
// the change log is not.
func (ds *Dataset) Match(subject, predicate, object rdf.Term) *Dataset {
	return ds.match(subject, predicate, object, nil)
}

// MatchGraph is Match restricted to a single graph. The zero IRI
// selects the default graph.
func (ds *Dataset) MatchGraph(subject, predicate, object rdf.Term, graph rdf.IRI) *Dataset {
	return ds.match(subject, predicate, object, &graph)
}

func (ds *Dataset) match(subject, predicate, object rdf.Term, graph *rdf.IRI) *Dataset {
	source := ds.Source()
	result := &Dataset{origin: ds.Origin()}
	for _, q := range ds.quads {
		if subject != nil && !rdf.TermsEqualIn(q.Subject, subject, source) {
			continue
		}
		if predicate != nil && !rdf.TermsEqualIn(q.Predicate, predicate, source) {
			continue
		}
		if object != nil && !rdf.TermsEqualIn(q.Object, object, source) {
			continue
		}
		if graph != nil && q.Graph != *graph {
			continue
		}
		result.quads = append(result.quads, q)
	}
	return result
}

// Filter returns a new Dataset holding the quads for which keep
// returns true. Origin info is carried to the result; the change log
// is not.
func (ds *Dataset) Filter(keep func(rdf.Quad) bool) *Dataset {
	result := &Dataset{origin: ds.Origin()}
	for _, q := range ds.quads {
		if keep(q) {
			result.quads = append(result.quads, q)
		}
	}
	return result
}

// Clone returns a structurally independent copy preserving origin info
// and change log.
func (ds *Dataset) Clone() *Dataset {
	return ds.shallowCopy()
}

// shallowCopy duplicates the dataset. Quad slices are copied; quads
// themselves are values and need no deep copy.
func (ds *Dataset) shallowCopy() *Dataset {
	return &Dataset{
		quads:  append([]rdf.Quad(nil), ds.quads...),
		origin: ds.Origin(),
		log:    ds.log.clone(),
	}
}
