// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package access

import (
	"fmt"

	"github.com/podgraph-foundation/podgraph/lib/acl"
)

// State is one tri-state access field.
type State int

const (
	// Unspecified means the governing list says nothing about the
	// mode. Distinct from Denied: an Unspecified field in an update
	// leaves the current state alone.
	Unspecified State = iota

	// Granted means the mode is granted.
	Granted

	// Denied means the mode is explicitly not granted. Produced by
	// callers building updates; reading a mode list never yields it.
	Denied
)

func (s State) String() string {
	switch s {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "unspecified"
	}
}

// Access is the universal five-field shape.
type Access struct {
	Read         State
	Append       State
	Write        State
	ControlRead  State
	ControlWrite State
}

// AsymmetricControlError reports an update whose two control fields
// disagree. The mode-list model has one control mode covering both
// reading and changing the list, so such an update cannot be
// represented; it must fail rather than silently pick one value.
type AsymmetricControlError struct {
	ControlRead  State
	ControlWrite State
}

func (e *AsymmetricControlError) Error() string {
	return fmt.Sprintf("access: control cannot be split: read %s, write %s",
		e.ControlRead, e.ControlWrite)
}

// FromModes translates a mode list into the universal shape. A granted
// mode maps to Granted; an absent mode maps to Unspecified, never
// Denied. Write subsumes append, and the single control mode grants
// both control fields together.
func FromModes(m acl.Modes) Access {
	a := Access{}
	if m.Read {
		a.Read = Granted
	}
	if m.Append || m.Write {
		a.Append = Granted
	}
	if m.Write {
		a.Write = Granted
	}
	if m.Control {
		a.ControlRead = Granted
		a.ControlWrite = Granted
	}
	return a
}

// ToModes translates the universal shape back into a mode list. Only
// Granted maps to a granted mode; Denied and Unspecified both leave
// the mode absent. Fails with *AsymmetricControlError when the two
// control fields disagree.
func ToModes(a Access) (acl.Modes, error) {
	if a.ControlRead != a.ControlWrite {
		return acl.Modes{}, &AsymmetricControlError{
			ControlRead:  a.ControlRead,
			ControlWrite: a.ControlWrite,
		}
	}
	return acl.Modes{
		Read:    a.Read == Granted,
		Append:  a.Append == Granted,
		Write:   a.Write == Granted,
		Control: a.ControlRead == Granted,
	}, nil
}

// over lays an update on top of previously-read access: every
// Unspecified field of the update keeps the current value.
func (update Access) over(current Access) Access {
	merged := current
	if update.Read != Unspecified {
		merged.Read = update.Read
	}
	if update.Append != Unspecified {
		merged.Append = update.Append
	}
	if update.Write != Unspecified {
		merged.Write = update.Write
	}
	if update.ControlRead != Unspecified {
		merged.ControlRead = update.ControlRead
	}
	if update.ControlWrite != Unspecified {
		merged.ControlWrite = update.ControlWrite
	}
	return merged
}
