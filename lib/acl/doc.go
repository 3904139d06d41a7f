// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package acl models Web Access Control lists and resolves the
// effective access modes an actor holds on a resource.
//
// An access control list is an ordinary dataset whose rules are Things
// of type acl:Authorization. A rule names actors (individual agents by
// WebID, groups, the public, or all authenticated agents), a scope
// (acl:accessTo for the exact resource, acl:default for the children
// of a container), and a set of granted modes (acl:Read, acl:Append,
// acl:Write, acl:Control).
//
// Discovery walks from the resource toward the root of its pod: the
// resource's own advertised list, when reachable, governs it
// exclusively; otherwise the nearest ancestor container's list
// supplies default rules. When neither is reachable, access is
// indeterminate, which is a normal query outcome, not an error.
//
// Combination is a monotonic union: a mode is granted when any
// matching rule grants it. Nothing in the model expresses denial, so
// rules are only ever additive.
package acl
