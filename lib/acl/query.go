// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package acl

import (
	"context"

	"github.com/podgraph-foundation/podgraph/lib/rdf"
)

// AgentAccess resolves the modes the individual agent holds on the
// resource. Only rules naming the agent's WebID directly count; grants
// to a group the agent belongs to, to the public, or to authenticated
// agents are separate queries. A nil result means the access is
// indeterminate: no governing list is reachable, or the governing list
// says nothing about this actor on this resource.
func AgentAccess(ctx context.Context, fetcher Fetcher, resource, agent rdf.IRI) (*Modes, error) {
	return query(ctx, fetcher, resource, func(r Rule) bool { return r.NamesAgent(agent) })
}

// GroupAccess resolves the modes granted to members of the group on
// the resource.
func GroupAccess(ctx context.Context, fetcher Fetcher, resource, group rdf.IRI) (*Modes, error) {
	return query(ctx, fetcher, resource, func(r Rule) bool { return r.NamesGroup(group) })
}

// PublicAccess resolves the modes granted to everyone on the resource.
func PublicAccess(ctx context.Context, fetcher Fetcher, resource rdf.IRI) (*Modes, error) {
	return query(ctx, fetcher, resource, Rule.AllowsPublic)
}

// AuthenticatedAccess resolves the modes granted to all logged-in
// actors on the resource.
func AuthenticatedAccess(ctx context.Context, fetcher Fetcher, resource rdf.IRI) (*Modes, error) {
	return query(ctx, fetcher, resource, Rule.AllowsAuthenticated)
}

func query(ctx context.Context, fetcher Fetcher, resource rdf.IRI, names func(Rule) bool) (*Modes, error) {
	governing, err := Discover(ctx, fetcher, resource)
	if err != nil {
		return nil, err
	}
	if governing == nil {
		return nil, nil
	}
	return GoverningModes(governing, names), nil
}

// GoverningModes combines the rules of an already-discovered governing
// list for one actor, selected by the names predicate: the union of
// the modes of every rule that both applies to the resource and names
// the actor. Nil when no rule does, since a list that says nothing
// about an actor leaves their access undetermined rather than denied.
func GoverningModes(governing *Governing, names func(Rule) bool) *Modes {
	var combined *Modes
	for _, rule := range matchingRules(governing) {
		if !names(rule) {
			continue
		}
		modes := rule.Modes()
		if combined == nil {
			combined = &Modes{}
		}
		*combined = combined.Union(modes)
	}
	return combined
}
