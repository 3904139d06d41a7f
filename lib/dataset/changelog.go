// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"github.com/podgraph-foundation/podgraph/lib/rdf"
)

// AddQuad returns a new Dataset with q added, reconciled through the
// change log. A change log is started if absent. If q cancels a
// recorded deletion, the deletion is dropped instead of an addition
// being recorded; if q is already present (or already recorded as an
// addition) nothing is duplicated.
func (ds *Dataset) AddQuad(q rdf.Quad) *Dataset {
	derived := ds.StartChangeLog().shallowCopy()
	source := derived.Source()

	if derived.Contains(q) {
		return derived
	}
	derived.quads = append(derived.quads, q)

	if idx := indexOfLogged(derived.log.Deletions, q, source); idx >= 0 {
		// Re-adding a quad marked for deletion: the round trip cancels
		// out and the delta stays minimal.
		derived.log.Deletions = removeAt(derived.log.Deletions, idx)
		return derived
	}
	if indexOfLogged(derived.log.Additions, q, source) < 0 {
		derived.log.Additions = append(derived.log.Additions, q)
	}
	return derived
}

// RemoveQuad returns a new Dataset with every quad equal to q (under
// the origin context) removed, reconciled through the change log. If q
// cancels a recorded addition, the addition is dropped instead of a
// deletion being recorded.
func (ds *Dataset) RemoveQuad(q rdf.Quad) *Dataset {
	derived := ds.StartChangeLog().shallowCopy()
	source := derived.Source()

	kept := derived.quads[:0:0]
	removed := false
	for _, existing := range derived.quads {
		if rdf.QuadsEqualIn(existing, q, source) {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		return derived
	}
	derived.quads = kept

	if idx := indexOfLogged(derived.log.Additions, q, source); idx >= 0 {
		derived.log.Additions = removeAt(derived.log.Additions, idx)
		return derived
	}
	if indexOfLogged(derived.log.Deletions, q, source) < 0 {
		derived.log.Deletions = append(derived.log.Deletions, q)
	}
	return derived
}

// indexOfLogged finds q in a change-log slice using reconciliation
// equality: context-aware quad equality, with the additional rule that
// two quads whose objects are both blank nodes compare equal when
// subject, predicate, and graph match. Blank nodes are regenerated on
// every parse, so structurally identical blank-objected quads from two
// parses must not be treated as distinct for diffing. This can
// conflate genuinely distinct blank-rooted subtrees under rare
// structural coincidences — a known approximation, not a guaranteed
// algorithm.
func indexOfLogged(logged []rdf.Quad, q rdf.Quad, source rdf.IRI) int {
	for i, candidate := range logged {
		if rdf.QuadsEqualIn(candidate, q, source) {
			return i
		}
		if bothBlankObjects(candidate, q) &&
			candidate.Predicate == q.Predicate &&
			candidate.Graph == q.Graph &&
			rdf.TermsEqualIn(candidate.Subject, q.Subject, source) {
			return i
		}
	}
	return -1
}

func bothBlankObjects(a, b rdf.Quad) bool {
	_, aBlank := a.Object.(rdf.BlankNode)
	_, bBlank := b.Object.(rdf.BlankNode)
	return aBlank && bBlank
}

func removeAt(quads []rdf.Quad, idx int) []rdf.Quad {
	return append(quads[:idx:idx], quads[idx+1:]...)
}

// ResolveLocalNodes returns a new Dataset in which every local node —
// in quads, change-log additions, and change-log deletions — is
// replaced by its persisted identifier under base. A malformed base
// fails with *rdf.InvalidIRIError.
func (ds *Dataset) ResolveLocalNodes(base rdf.IRI) (*Dataset, error) {
	derived := ds.shallowCopy()

	resolveTerm := func(t rdf.Term) (rdf.Term, error) {
		n, ok := t.(rdf.LocalNode)
		if !ok {
			return t, nil
		}
		return n.ResolveIn(base)
	}

	resolveQuads := func(quads []rdf.Quad) error {
		for i, q := range quads {
			subject, err := resolveTerm(q.Subject)
			if err != nil {
				return err
			}
			object, err := resolveTerm(q.Object)
			if err != nil {
				return err
			}
			quads[i].Subject = subject.(rdf.SubjectTerm)
			quads[i].Object = object
		}
		return nil
	}

	if err := resolveQuads(derived.quads); err != nil {
		return nil, err
	}
	if derived.log != nil {
		if err := resolveQuads(derived.log.Additions); err != nil {
			return nil, err
		}
		if err := resolveQuads(derived.log.Deletions); err != nil {
			return nil, err
		}
	}
	return derived, nil
}
