// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package access presents access control in a vocabulary-independent
// shape: five tri-state fields, with control split into reading and
// changing the governing list. The mode-list model of package acl is
// one concrete backend; translation to it fails when an update grants
// or revokes only half of control, because the list model carries a
// single control mode.
//
// Tri-state matters because the list model cannot express denial:
// a mode a list says nothing about is Unspecified, never Denied.
// Writing treats Denied and Unspecified alike (the mode ends up not
// granted); reading never produces Denied.
package access
