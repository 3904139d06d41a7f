// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package thing provides the Thing projection — the view of a dataset
// restricted to the quads sharing one subject — and the mutation
// engine that writes Things back into new dataset snapshots.
//
// A Thing is an extraction, not an owning structure. It is obtained
// from a dataset with [Get] or [All] and written back with [Set] or
// removed with [Remove]; the dataset operations are copy-on-write and
// reconcile every quad through the dataset's change log.
//
// Absence discipline: [Get] returns ok=false when no quad has the
// requested subject. There is no "empty but present" Thing — the data
// model cannot distinguish a subject that exists with no statements
// from one that never existed, so this package does not pretend to.
package thing
