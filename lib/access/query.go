// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package access

import (
	"context"

	"github.com/podgraph-foundation/podgraph/lib/acl"
	"github.com/podgraph-foundation/podgraph/lib/rdf"
)

// AgentAccess resolves the agent's access to the resource in the
// universal shape. Nil means indeterminate, exactly as for the
// underlying mode query.
func AgentAccess(ctx context.Context, fetcher acl.Fetcher, resource, agent rdf.IRI) (*Access, error) {
	return translate(acl.AgentAccess(ctx, fetcher, resource, agent))
}

// GroupAccess resolves the access granted to members of the group.
func GroupAccess(ctx context.Context, fetcher acl.Fetcher, resource, group rdf.IRI) (*Access, error) {
	return translate(acl.GroupAccess(ctx, fetcher, resource, group))
}

// PublicAccess resolves the access granted to everyone.
func PublicAccess(ctx context.Context, fetcher acl.Fetcher, resource rdf.IRI) (*Access, error) {
	return translate(acl.PublicAccess(ctx, fetcher, resource))
}

// AuthenticatedAccess resolves the access granted to all logged-in
// actors.
func AuthenticatedAccess(ctx context.Context, fetcher acl.Fetcher, resource rdf.IRI) (*Access, error) {
	return translate(acl.AuthenticatedAccess(ctx, fetcher, resource))
}

func translate(modes *acl.Modes, err error) (*Access, error) {
	if err != nil || modes == nil {
		return nil, err
	}
	a := FromModes(*modes)
	return &a, nil
}
