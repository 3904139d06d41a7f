// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package acl

// Modes is the set of access modes a rule grants. A false field means
// the mode is not granted by this particular rule set; the model has
// no way to express an explicit denial.
type Modes struct {
	Read    bool
	Append  bool
	Write   bool
	Control bool
}

// Union returns the mode-wise OR of the two sets. Rules for the same
// actor are additive, never restrictive.
func (m Modes) Union(other Modes) Modes {
	return Modes{
		Read:    m.Read || other.Read,
		Append:  m.Append || other.Append,
		Write:   m.Write || other.Write,
		Control: m.Control || other.Control,
	}
}

// IsEmpty reports whether no mode is granted.
func (m Modes) IsEmpty() bool {
	return m == Modes{}
}
