// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataset provides the in-memory quad store: an
// insertion-ordered set of quads with copy-on-write semantics,
// optional origin info recording the address the data was fetched
// from, and a change log tracking the minimal delta against the last
// known server state.
//
// Every operation that would mutate a Dataset instead returns a new
// one; a Dataset is never modified after construction. This removes
// any need for defensive cloning or locking — a Dataset may be shared
// freely across goroutines once produced.
//
// The change log reconciles self-canceling pairs: adding a quad that
// is recorded as deleted cancels the deletion instead of recording an
// addition, and symmetrically for removal. Reconciliation treats two
// quads whose objects are both blank nodes as equal when subject,
// predicate, and graph match, because blank nodes are regenerated on
// every parse of server content. This is a documented approximation:
// structurally distinct blank-rooted subtrees can be conflated under
// rare coincidences of subject and predicate.
package dataset
