// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/podgraph-foundation/podgraph/lib/dataset"
	"github.com/podgraph-foundation/podgraph/lib/httputil"
	"github.com/podgraph-foundation/podgraph/lib/rdf"
	"github.com/podgraph-foundation/podgraph/lib/turtle"
)

const contentTypeTurtle = "text/turtle"
const contentTypeSparqlUpdate = "application/sparql-update"

// FetchDataset reads the resource at the given address, parses it, and
// returns a dataset stamped with origin info and an empty change log —
// the in-memory state now matches the server state exactly.
func (c *Client) FetchDataset(ctx context.Context, address rdf.IRI) (*dataset.Dataset, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, address, map[string]string{
		"Accept": contentTypeTurtle,
	}, nil)
	if err != nil {
		return nil, err
	}

	quads, err := turtle.Parse(string(resp.body), address)
	if err != nil {
		return nil, fmt.Errorf("client: failed to parse resource %s: %w", address, err)
	}

	c.logger.Debug("fetched dataset", "address", address, "quads", len(quads))
	return dataset.New(quads...).WithOrigin(address).StartChangeLog(), nil
}

// SaveDataset writes the dataset to the given address and returns the
// saved state: quads with local nodes resolved, origin refreshed to
// the saved address, change log reset to empty.
//
// When the dataset was fetched from the same address and carries
// change-log entries, only the delta is sent (PATCH sparql-update).
// When the dataset was fetched from the same address and the change
// log is empty, the server already has this state and no request is
// made. Otherwise the full quad set is sent (PUT), with
// If-None-Match: * when the dataset has no origin at all — the caller
// believes the resource is new, and a clash should fail, not
// overwrite.
func (c *Client) SaveDataset(ctx context.Context, address rdf.IRI, ds *dataset.Dataset) (*dataset.Dataset, error) {
	if _, err := rdf.ParseIRI(string(address)); err != nil {
		return nil, err
	}

	resolved, err := ds.ResolveLocalNodes(address)
	if err != nil {
		return nil, err
	}

	log := resolved.ChangeLog()
	incremental := resolved.Source() == address && ds.Origin() != nil

	switch {
	case incremental && log.IsEmpty():
		c.logger.Debug("save skipped, no changes", "address", address)

	case incremental:
		body, err := sparqlUpdate(log)
		if err != nil {
			return nil, err
		}
		if _, err := c.doRequest(ctx, http.MethodPatch, address, map[string]string{
			"Content-Type": contentTypeSparqlUpdate,
		}, strings.NewReader(body)); err != nil {
			return nil, err
		}
		c.logger.Debug("saved dataset incrementally",
			"address", address,
			"insertions", len(log.Additions),
			"deletions", len(log.Deletions),
		)

	default:
		body, err := turtle.Serialize(resolved.Quads())
		if err != nil {
			return nil, err
		}
		headers := map[string]string{
			"Content-Type": contentTypeTurtle,
		}
		if ds.Origin() == nil {
			headers["If-None-Match"] = "*"
		}
		if _, err := c.doRequest(ctx, http.MethodPut, address, headers, strings.NewReader(body)); err != nil {
			return nil, err
		}
		c.logger.Debug("saved dataset", "address", address, "quads", resolved.Len())
	}

	return resolved.WithOrigin(address).ResetChangeLog(), nil
}

// sparqlUpdate renders a change log as a SPARQL Update body:
// DELETE DATA {…}; INSERT DATA {…}; with either clause omitted when
// its list is empty.
func sparqlUpdate(log *dataset.ChangeLog) (string, error) {
	var clauses []string
	if len(log.Deletions) > 0 {
		triples, err := turtle.Serialize(log.Deletions)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, "DELETE DATA {\n"+triples+"};")
	}
	if len(log.Additions) > 0 {
		triples, err := turtle.Serialize(log.Additions)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, "INSERT DATA {\n"+triples+"};")
	}
	return strings.Join(clauses, "\n"), nil
}

// CreateInContainer writes the dataset as a new resource inside the
// given container (POST), letting the server pick the address —
// conveyed back via the Location response header. slug, when
// non-empty, suggests a name; the server is free to ignore it.
// Returns the saved state under the server-assigned address.
func (c *Client) CreateInContainer(ctx context.Context, container rdf.IRI, ds *dataset.Dataset, slug string) (*dataset.Dataset, error) {
	if _, err := rdf.ParseIRI(string(container)); err != nil {
		return nil, err
	}

	// The new resource's address is unknown until the server responds,
	// so local nodes are serialized as relative hash references, which
	// the server resolves against the created resource.
	body, err := turtle.Serialize(localNodesAsRelative(ds.Quads()))
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Content-Type": contentTypeTurtle,
		"Link":         `<http://www.w3.org/ns/ldp#Resource>; rel="type"`,
	}
	if slug != "" {
		headers["Slug"] = slug
	}

	resp, err := c.doRequest(ctx, http.MethodPost, container, headers, strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	location := resp.header.Get("Location")
	if location == "" {
		return nil, fmt.Errorf("client: creation response from %s carries no Location header", container)
	}
	created, err := resolveAgainst(location, container)
	if err != nil {
		return nil, err
	}

	resolved, err := ds.ResolveLocalNodes(created)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("created dataset in container", "container", container, "address", created)
	return resolved.WithOrigin(created).ResetChangeLog(), nil
}

// localNodesAsRelative substitutes each local node with a relative
// hash reference ("#name"). Relative references are resolved by the
// server against the effective request URI — exactly the address the
// local name will resolve to once known.
func localNodesAsRelative(quads []rdf.Quad) []rdf.Quad {
	for i, q := range quads {
		if local, ok := q.Subject.(rdf.LocalNode); ok {
			quads[i].Subject = rdf.IRI("#" + local.Name)
		}
		if local, ok := q.Object.(rdf.LocalNode); ok {
			quads[i].Object = rdf.IRI("#" + local.Name)
		}
	}
	return quads
}

// DeleteDataset removes the resource at the given address.
func (c *Client) DeleteDataset(ctx context.Context, address rdf.IRI) error {
	_, err := c.doRequest(ctx, http.MethodDelete, address, nil, nil)
	if err != nil {
		return err
	}
	c.logger.Debug("deleted dataset", "address", address)
	return nil
}

// ACLLocation probes the resource's headers (HEAD) for the Link
// relation advertising its governing access list. Returns ok=false
// when the resource does not advertise one. The advertised address may
// be relative and is resolved against the resource address.
func (c *Client) ACLLocation(ctx context.Context, address rdf.IRI) (rdf.IRI, bool, error) {
	resp, err := c.doRequest(ctx, http.MethodHead, address, nil, nil)
	if err != nil {
		return "", false, err
	}

	target, found := httputil.ParseLinkRelation(resp.header.Values("Link"), "acl")
	if !found {
		return "", false, nil
	}
	resolved, err := resolveAgainst(target, address)
	if err != nil {
		return "", false, err
	}
	return resolved, true, nil
}
