// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/podgraph-foundation/podgraph/lib/dataset"
	"github.com/podgraph-foundation/podgraph/lib/rdf"
	"github.com/podgraph-foundation/podgraph/lib/vocab"
)

func sampleDataset() *dataset.Dataset {
	subject := rdf.IRI("https://pod.example/notes#first")
	return dataset.New(
		rdf.Quad{
			Subject:   subject,
			Predicate: vocab.RDFType,
			Object:    rdf.IRI("https://example.org/Note"),
		},
		rdf.Quad{
			Subject:   subject,
			Predicate: "https://example.org/body",
			Object:    rdf.Literal{Value: "remember the milk", Datatype: vocab.XSDString},
		},
		rdf.Quad{
			Subject:   rdf.LocalNode{Name: "draft"},
			Predicate: "https://example.org/body",
			Object:    rdf.Literal{Value: "salut", Language: "fr", Datatype: vocab.RDFLangString},
		},
		rdf.Quad{
			Subject:   rdf.BlankNode{ID: "b0"},
			Predicate: "https://example.org/anon",
			Object:    rdf.BlankNode{ID: "b1"},
		},
	).WithOrigin("https://pod.example/notes").StartChangeLog()
}

func TestWriteReadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.snap")
	original := sampleDataset()

	if err := Write(path, original); err != nil {
		t.Fatalf("Write: %v", err)
	}

	loaded, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if loaded.Len() != original.Len() {
		t.Fatalf("Len() = %d, want %d", loaded.Len(), original.Len())
	}
	for _, q := range original.Quads() {
		if !loaded.Contains(q) {
			t.Errorf("loaded snapshot missing %v", q)
		}
	}
	if loaded.Source() != original.Source() {
		t.Errorf("Source() = %s, want %s", loaded.Source(), original.Source())
	}
	if log := loaded.ChangeLog(); log == nil || !log.IsEmpty() {
		t.Errorf("loaded snapshot should start with an empty change log, got %+v", log)
	}
}

func TestWriteCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "notes.snap")
	if err := Write(path, sampleDataset()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}
}

func TestReadDetectsCorruption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.snap")
	if err := Write(path, sampleDataset()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Flip one payload byte past the header and hash.
	raw[len(raw)-1] ^= 0x01
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err = Read(path)
	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("error = %v, want *IntegrityError", err)
	}
	if integrity.Path != path {
		t.Errorf("Path = %s, want %s", integrity.Path, path)
	}
}

func TestReadRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-snapshot")
	if err := os.WriteFile(path, []byte("just some text\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Error("Read should reject a file without the snapshot magic")
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.snap"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestWriteWithoutOrigin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.snap")
	ds := dataset.New(rdf.Quad{
		Subject:   rdf.LocalNode{Name: "draft"},
		Predicate: vocab.RDFType,
		Object:    rdf.IRI("https://example.org/Note"),
	})

	if err := Write(path, ds); err != nil {
		t.Fatalf("Write: %v", err)
	}
	loaded, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if loaded.Origin() != nil {
		t.Errorf("Origin() = %+v, want nil for a dataset never fetched", loaded.Origin())
	}
}
