// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package acl

import (
	"context"

	"github.com/podgraph-foundation/podgraph/lib/dataset"
	"github.com/podgraph-foundation/podgraph/lib/rdf"
)

// Fetcher is the narrow slice of the client the access engine needs:
// reading a dataset and locating a resource's advertised access
// control list. *client.Client satisfies it.
type Fetcher interface {
	FetchDataset(ctx context.Context, address rdf.IRI) (*dataset.Dataset, error)
	ACLLocation(ctx context.Context, address rdf.IRI) (rdf.IRI, bool, error)
}

// Governing is the outcome of a successful discovery: the access
// control list that governs a resource.
type Governing struct {
	// Resource is the resource the discovery started from.
	Resource rdf.IRI

	// List is the fetched access control list.
	List *dataset.Dataset

	// Address is where the list lives.
	Address rdf.IRI

	// Owner is the resource whose metadata advertised the list. Equal
	// to Resource when the resource has its own list; an ancestor
	// container otherwise.
	Owner rdf.IRI

	// Fallback reports whether the list governs via default rules from
	// an ancestor rather than the resource's own list. Exactly
	// Owner != Resource.
	Fallback bool
}

// Discover walks from the resource toward the root of its pod looking
// for the governing access control list: first the resource's own
// advertised list, then each ancestor container's in turn. The walk is
// strictly sequential; finding a list is terminal.
//
// A hop whose headers cannot be read or whose list cannot be fetched
// is treated the same as a hop that advertises no list: the walk moves
// on to the parent. Reading a list typically requires Control access,
// so an unreadable hop reveals nothing about what governs the
// resource. When the root is reached without a list, Discover returns
// (nil, nil): access is indeterminate, which the caller must
// distinguish from any particular grant or absence of one.
func Discover(ctx context.Context, fetcher Fetcher, resource rdf.IRI) (*Governing, error) {
	if _, err := rdf.ParseIRI(string(resource)); err != nil {
		return nil, err
	}

	target := resource
	for {
		if ctx.Err() != nil {
			return nil, nil
		}

		address, advertised, err := fetcher.ACLLocation(ctx, target)
		if err == nil && advertised {
			list, err := fetcher.FetchDataset(ctx, address)
			if err == nil {
				return &Governing{
					Resource: resource,
					List:     list,
					Address:  address,
					Owner:    target,
					Fallback: target != resource,
				}, nil
			}
		}

		parent, ok := rdf.ParentContainer(target)
		if !ok {
			return nil, nil
		}
		target = parent
	}
}

// matchingRules selects the rules of a governing list that apply to
// its resource. With the resource's own list, only acl:accessTo rules
// naming the resource count. With a fallback list, only default rules
// scoped to the advertising ancestor count; the two sets are never
// merged, and default rules never reach back to the ancestor itself.
func matchingRules(governing *Governing) []Rule {
	var matched []Rule
	for _, rule := range Rules(governing.List) {
		if governing.Fallback {
			if rule.DefaultsFor(governing.Owner) {
				matched = append(matched, rule)
			}
		} else if rule.AppliesTo(governing.Resource) {
			matched = append(matched, rule)
		}
	}
	return matched
}
