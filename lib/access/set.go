// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package access

import (
	"context"
	"fmt"

	"github.com/podgraph-foundation/podgraph/lib/acl"
	"github.com/podgraph-foundation/podgraph/lib/dataset"
	"github.com/podgraph-foundation/podgraph/lib/rdf"
	"github.com/podgraph-foundation/podgraph/lib/thing"
	"github.com/podgraph-foundation/podgraph/lib/vocab"
)

// IndeterminateError reports a write that cannot proceed because the
// actor's current access is unknowable: no governing list is reachable
// for the resource, so a partial update has nothing to merge into.
type IndeterminateError struct {
	Resource rdf.IRI
}

func (e *IndeterminateError) Error() string {
	return fmt.Sprintf("access: no governing list reachable for %s", e.Resource)
}

// SetAgentAccess applies a partial update to the agent's access on the
// resource: Unspecified fields keep the value read from the governing
// list immediately before the write. Returns the rewritten list and
// the address it must be saved to; the caller persists it. When the
// resource is governed by an ancestor's default rules, a new list for
// the resource itself is written instead, seeded from those default
// rules so no other actor's effective access changes.
func SetAgentAccess(ctx context.Context, fetcher acl.Fetcher, resource, agent rdf.IRI, update Access) (*dataset.Dataset, rdf.IRI, error) {
	return setAccess(ctx, fetcher, resource, update,
		func(r acl.Rule) bool { return r.NamesAgent(agent) },
		func(list *dataset.Dataset, modes acl.Modes) (*dataset.Dataset, error) {
			return acl.SetAgentResourceAccess(list, resource, agent, modes)
		})
}

// SetGroupAccess is SetAgentAccess for members of a group.
func SetGroupAccess(ctx context.Context, fetcher acl.Fetcher, resource, group rdf.IRI, update Access) (*dataset.Dataset, rdf.IRI, error) {
	return setAccess(ctx, fetcher, resource, update,
		func(r acl.Rule) bool { return r.NamesGroup(group) },
		func(list *dataset.Dataset, modes acl.Modes) (*dataset.Dataset, error) {
			return acl.SetGroupResourceAccess(list, resource, group, modes)
		})
}

// SetPublicAccess is SetAgentAccess for everyone.
func SetPublicAccess(ctx context.Context, fetcher acl.Fetcher, resource rdf.IRI, update Access) (*dataset.Dataset, rdf.IRI, error) {
	return setAccess(ctx, fetcher, resource, update,
		acl.Rule.AllowsPublic,
		func(list *dataset.Dataset, modes acl.Modes) (*dataset.Dataset, error) {
			return acl.SetPublicResourceAccess(list, resource, modes)
		})
}

// SetAuthenticatedAccess is SetAgentAccess for all logged-in actors.
func SetAuthenticatedAccess(ctx context.Context, fetcher acl.Fetcher, resource rdf.IRI, update Access) (*dataset.Dataset, rdf.IRI, error) {
	return setAccess(ctx, fetcher, resource, update,
		acl.Rule.AllowsAuthenticated,
		func(list *dataset.Dataset, modes acl.Modes) (*dataset.Dataset, error) {
			return acl.SetAuthenticatedResourceAccess(list, resource, modes)
		})
}

func setAccess(ctx context.Context, fetcher acl.Fetcher, resource rdf.IRI, update Access,
	names func(acl.Rule) bool,
	rewrite func(*dataset.Dataset, acl.Modes) (*dataset.Dataset, error),
) (*dataset.Dataset, rdf.IRI, error) {
	governing, err := acl.Discover(ctx, fetcher, resource)
	if err != nil {
		return nil, "", err
	}
	if governing == nil {
		return nil, "", &IndeterminateError{Resource: resource}
	}

	current := Access{}
	if modes := acl.GoverningModes(governing, names); modes != nil {
		current = FromModes(*modes)
	}
	modes, err := ToModes(update.over(current))
	if err != nil {
		return nil, "", err
	}

	list := governing.List
	target := governing.Address
	if governing.Fallback {
		// The resource has no list of its own. Writing into the
		// ancestor's list would change access for every sibling, so a
		// fresh list is created at the location the resource
		// advertises for it, seeded from the governing default rules.
		advertised, ok, err := fetcher.ACLLocation(ctx, resource)
		if err != nil {
			return nil, "", err
		}
		if !ok {
			return nil, "", fmt.Errorf("access: %s advertises no access control list location", resource)
		}
		target = advertised
		list, err = seedFromFallback(governing, resource)
		if err != nil {
			return nil, "", err
		}
	}

	rewritten, err := rewrite(list, modes)
	if err != nil {
		return nil, "", err
	}
	return rewritten, target, nil
}

// seedFromFallback builds a new list for the resource that reproduces
// the effective access its governing default rules grant: one
// acl:accessTo rule per default rule, carrying over actors and modes.
// The new list has no origin, so saving it performs a guarded full
// write rather than a patch.
func seedFromFallback(governing *acl.Governing, resource rdf.IRI) (*dataset.Dataset, error) {
	list := dataset.New().StartChangeLog()
	for _, rule := range acl.Rules(governing.List) {
		if !rule.DefaultsFor(governing.Owner) {
			continue
		}
		seeded := thing.NewLocal().
			With(vocab.RDFType, vocab.ACLAuthorization).
			With(vocab.ACLAccessTo, resource)
		for _, predicate := range []rdf.IRI{
			vocab.ACLAgent, vocab.ACLAgentGroup, vocab.ACLAgentClass, vocab.ACLMode,
		} {
			for _, object := range rule.Objects(predicate) {
				seeded = seeded.With(predicate, object)
			}
		}
		var err error
		list, err = thing.Set(list, seeded)
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}
