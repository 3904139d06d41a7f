// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/podgraph-foundation/podgraph/lib/dataset"
	"github.com/podgraph-foundation/podgraph/lib/rdf"
	"github.com/podgraph-foundation/podgraph/lib/thing"
	"github.com/podgraph-foundation/podgraph/lib/vocab"
)

// recordedRequest captures what the server saw for assertion after the
// client call returns.
type recordedRequest struct {
	method string
	path   string
	header http.Header
	body   string
}

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return New(Config{HTTPClient: server.Client()}), server
}

func TestFetchDataset(t *testing.T) {
	var recorded recordedRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		recorded = recordedRequest{method: r.Method, path: r.URL.Path, header: r.Header.Clone()}
		w.Header().Set("Content-Type", "text/turtle")
		w.Write([]byte(`<#alice> <http://xmlns.com/foaf/0.1/name> "Alice" .`))
	})
	defer server.Close()

	address := rdf.IRI(server.URL + "/people")
	ds, err := client.FetchDataset(context.Background(), address)
	if err != nil {
		t.Fatalf("FetchDataset: %v", err)
	}

	if recorded.method != http.MethodGet {
		t.Errorf("method = %s, want GET", recorded.method)
	}
	if accept := recorded.header.Get("Accept"); accept != "text/turtle" {
		t.Errorf("Accept = %q, want text/turtle", accept)
	}
	if ds.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ds.Len())
	}
	if ds.Source() != address {
		t.Errorf("Source() = %s, want %s", ds.Source(), address)
	}
	log := ds.ChangeLog()
	if log == nil || !log.IsEmpty() {
		t.Errorf("fetched dataset should carry an empty change log, got %+v", log)
	}

	want := rdf.Quad{
		Subject:   rdf.IRI(server.URL + "/people#alice"),
		Predicate: "http://xmlns.com/foaf/0.1/name",
		Object:    rdf.Literal{Value: "Alice", Datatype: vocab.XSDString},
	}
	if !ds.Contains(want) {
		t.Errorf("dataset missing %v, got %v", want, ds.Quads())
	}
}

func TestFetchDatasetStatusError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such resource", http.StatusNotFound)
	})
	defer server.Close()

	_, err := client.FetchDataset(context.Background(), rdf.IRI(server.URL+"/missing"))
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
	if !HasStatus(err, http.StatusNotFound) {
		t.Error("HasStatus(err, 404) = false, want true")
	}
}

func TestSaveDatasetNewResource(t *testing.T) {
	var recorded recordedRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		recorded = recordedRequest{method: r.Method, header: r.Header.Clone(), body: string(body)}
		w.WriteHeader(http.StatusCreated)
	})
	defer server.Close()

	address := rdf.IRI(server.URL + "/notes")
	ds := dataset.New().AddQuad(rdf.Quad{
		Subject:   rdf.LocalNode{Name: "note"},
		Predicate: vocab.RDFType,
		Object:    rdf.IRI("https://example.org/Note"),
	})

	saved, err := client.SaveDataset(context.Background(), address, ds)
	if err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}

	if recorded.method != http.MethodPut {
		t.Errorf("method = %s, want PUT", recorded.method)
	}
	if recorded.header.Get("If-None-Match") != "*" {
		t.Error("new resource write should carry If-None-Match: *")
	}
	if ct := recorded.header.Get("Content-Type"); ct != "text/turtle" {
		t.Errorf("Content-Type = %q, want text/turtle", ct)
	}
	if !strings.Contains(recorded.body, string(address)+"#note") {
		t.Errorf("body should carry the resolved local name, got %q", recorded.body)
	}

	if saved.Source() != address {
		t.Errorf("saved Source() = %s, want %s", saved.Source(), address)
	}
	if log := saved.ChangeLog(); log == nil || !log.IsEmpty() {
		t.Errorf("saved dataset should carry a fresh change log, got %+v", log)
	}
	resolved := rdf.Quad{
		Subject:   rdf.IRI(string(address) + "#note"),
		Predicate: vocab.RDFType,
		Object:    rdf.IRI("https://example.org/Note"),
	}
	if !saved.Contains(resolved) {
		t.Errorf("saved dataset missing resolved quad, got %v", saved.Quads())
	}
}

func TestSaveDatasetIncremental(t *testing.T) {
	var recorded recordedRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		recorded = recordedRequest{method: r.Method, header: r.Header.Clone(), body: string(body)}
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	address := rdf.IRI(server.URL + "/profile")
	old := rdf.Quad{
		Subject:   rdf.IRI(string(address) + "#me"),
		Predicate: "http://xmlns.com/foaf/0.1/name",
		Object:    rdf.Literal{Value: "Alice", Datatype: vocab.XSDString},
	}
	ds := dataset.New(old).WithOrigin(address).StartChangeLog().
		RemoveQuad(old).
		AddQuad(rdf.Quad{
			Subject:   old.Subject,
			Predicate: old.Predicate,
			Object:    rdf.Literal{Value: "Alicia", Datatype: vocab.XSDString},
		})

	saved, err := client.SaveDataset(context.Background(), address, ds)
	if err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}

	if recorded.method != http.MethodPatch {
		t.Errorf("method = %s, want PATCH", recorded.method)
	}
	if ct := recorded.header.Get("Content-Type"); ct != "application/sparql-update" {
		t.Errorf("Content-Type = %q, want application/sparql-update", ct)
	}
	if !strings.Contains(recorded.body, "DELETE DATA {") || !strings.Contains(recorded.body, `"Alice"`) {
		t.Errorf("body missing DELETE DATA clause: %q", recorded.body)
	}
	if !strings.Contains(recorded.body, "INSERT DATA {") || !strings.Contains(recorded.body, `"Alicia"`) {
		t.Errorf("body missing INSERT DATA clause: %q", recorded.body)
	}
	if log := saved.ChangeLog(); log == nil || !log.IsEmpty() {
		t.Errorf("saved dataset should carry a fresh change log, got %+v", log)
	}
}

func TestSaveDatasetInsertOnlyOmitsDeleteClause(t *testing.T) {
	var recorded recordedRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		recorded = recordedRequest{method: r.Method, body: string(body)}
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	address := rdf.IRI(server.URL + "/profile")
	ds := dataset.New().WithOrigin(address).StartChangeLog().AddQuad(rdf.Quad{
		Subject:   rdf.IRI(string(address) + "#me"),
		Predicate: vocab.RDFType,
		Object:    rdf.IRI("http://xmlns.com/foaf/0.1/Person"),
	})

	if _, err := client.SaveDataset(context.Background(), address, ds); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}
	if strings.Contains(recorded.body, "DELETE DATA") {
		t.Errorf("empty deletion list should omit the DELETE DATA clause: %q", recorded.body)
	}
	if !strings.Contains(recorded.body, "INSERT DATA {") {
		t.Errorf("body missing INSERT DATA clause: %q", recorded.body)
	}
}

func TestSaveDatasetNoChanges(t *testing.T) {
	requests := 0
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	address := rdf.IRI(server.URL + "/profile")
	ds := dataset.New(rdf.Quad{
		Subject:   rdf.IRI(string(address) + "#me"),
		Predicate: vocab.RDFType,
		Object:    rdf.IRI("http://xmlns.com/foaf/0.1/Person"),
	}).WithOrigin(address).StartChangeLog()

	if _, err := client.SaveDataset(context.Background(), address, ds); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}
	if requests != 0 {
		t.Errorf("unchanged dataset triggered %d requests, want 0", requests)
	}
}

func TestSaveDatasetDifferentTargetUsesPut(t *testing.T) {
	var recorded recordedRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		recorded = recordedRequest{method: r.Method, header: r.Header.Clone()}
		w.WriteHeader(http.StatusCreated)
	})
	defer server.Close()

	origin := rdf.IRI(server.URL + "/original")
	target := rdf.IRI(server.URL + "/copy")
	ds := dataset.New(rdf.Quad{
		Subject:   rdf.IRI(string(origin) + "#me"),
		Predicate: vocab.RDFType,
		Object:    rdf.IRI("http://xmlns.com/foaf/0.1/Person"),
	}).WithOrigin(origin).StartChangeLog()

	if _, err := client.SaveDataset(context.Background(), target, ds); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}
	if recorded.method != http.MethodPut {
		t.Errorf("method = %s, want PUT", recorded.method)
	}
	if recorded.header.Get("If-None-Match") != "" {
		t.Error("dataset with an origin should not send If-None-Match on PUT")
	}
}

func TestCreateInContainer(t *testing.T) {
	var recorded recordedRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		recorded = recordedRequest{method: r.Method, header: r.Header.Clone(), body: string(body)}
		w.Header().Set("Location", "/container/note-1")
		w.WriteHeader(http.StatusCreated)
	})
	defer server.Close()

	container := rdf.IRI(server.URL + "/container/")
	note := thing.NewLocalNamed("it").With(vocab.RDFType, rdf.IRI("https://example.org/Note"))
	ds, err := thing.Set(dataset.New().StartChangeLog(), note)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	created, err := client.CreateInContainer(context.Background(), container, ds, "note-1")
	if err != nil {
		t.Fatalf("CreateInContainer: %v", err)
	}

	if recorded.method != http.MethodPost {
		t.Errorf("method = %s, want POST", recorded.method)
	}
	if slug := recorded.header.Get("Slug"); slug != "note-1" {
		t.Errorf("Slug = %q, want note-1", slug)
	}
	if !strings.Contains(recorded.body, "<#it>") {
		t.Errorf("body should serialize local nodes as relative references, got %q", recorded.body)
	}

	wantAddress := rdf.IRI(server.URL + "/container/note-1")
	if created.Source() != wantAddress {
		t.Errorf("Source() = %s, want %s", created.Source(), wantAddress)
	}
	resolved := rdf.Quad{
		Subject:   rdf.IRI(string(wantAddress) + "#it"),
		Predicate: vocab.RDFType,
		Object:    rdf.IRI("https://example.org/Note"),
	}
	if !created.Contains(resolved) {
		t.Errorf("created dataset missing resolved quad, got %v", created.Quads())
	}
}

func TestCreateInContainerMissingLocation(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	defer server.Close()

	_, err := client.CreateInContainer(context.Background(), rdf.IRI(server.URL+"/c/"), dataset.New(), "")
	if err == nil || !strings.Contains(err.Error(), "Location") {
		t.Errorf("missing Location header should fail, got %v", err)
	}
}

func TestDeleteDataset(t *testing.T) {
	var recorded recordedRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		recorded = recordedRequest{method: r.Method, path: r.URL.Path}
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	if err := client.DeleteDataset(context.Background(), rdf.IRI(server.URL+"/gone")); err != nil {
		t.Fatalf("DeleteDataset: %v", err)
	}
	if recorded.method != http.MethodDelete {
		t.Errorf("method = %s, want DELETE", recorded.method)
	}
	if recorded.path != "/gone" {
		t.Errorf("path = %s, want /gone", recorded.path)
	}
}

func TestACLLocation(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		w.Header().Set("Link", `<resource.acl>; rel="acl", <https://example.org/type>; rel="type"`)
		w.WriteHeader(http.StatusOK)
	})
	defer server.Close()

	address := rdf.IRI(server.URL + "/data/resource")
	acl, ok, err := client.ACLLocation(context.Background(), address)
	if err != nil {
		t.Fatalf("ACLLocation: %v", err)
	}
	if !ok {
		t.Fatal("ok = false, want true")
	}
	want := rdf.IRI(server.URL + "/data/resource.acl")
	if acl != want {
		t.Errorf("acl = %s, want %s", acl, want)
	}
}

func TestACLLocationAbsent(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	defer server.Close()

	_, ok, err := client.ACLLocation(context.Background(), rdf.IRI(server.URL+"/plain"))
	if err != nil {
		t.Fatalf("ACLLocation: %v", err)
	}
	if ok {
		t.Error("ok = true for a resource without a Link header, want false")
	}
}

func TestBearerToken(t *testing.T) {
	var authorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(Config{HTTPClient: server.Client(), BearerToken: "token-123"})
	if err := client.DeleteDataset(context.Background(), rdf.IRI(server.URL+"/x")); err != nil {
		t.Fatalf("DeleteDataset: %v", err)
	}
	if authorization != "Bearer token-123" {
		t.Errorf("Authorization = %q, want Bearer token-123", authorization)
	}
}
