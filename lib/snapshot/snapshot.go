// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot persists datasets to local files for offline use.
// A snapshot file is a fixed magic header, a 32-byte BLAKE3 keyed hash
// of the payload, and the payload itself: a zstd-compressed,
// deterministically CBOR-encoded record of the dataset's quads and
// origin. The hash is verified on load, so a truncated or tampered
// file fails loudly instead of yielding a silently wrong dataset.
package snapshot

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/podgraph-foundation/podgraph/lib/codec"
	"github.com/podgraph-foundation/podgraph/lib/dataset"
	"github.com/podgraph-foundation/podgraph/lib/rdf"
)

// magic identifies a snapshot file. The trailing digit is the format
// version.
var magic = []byte("PODGRAPH-SNAP1\n")

// hashKey is the BLAKE3 keyed-hashing domain key for snapshot
// payloads: the ASCII domain name zero-padded to 32 bytes. Fixed
// protocol constant; changing it invalidates every existing snapshot.
var hashKey = [32]byte{
	'p', 'o', 'd', 'g', 'r', 'a', 'p', 'h', '.', 's', 'n', 'a', 'p', 's', 'h', 'o',
	't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// IntegrityError reports a snapshot whose payload does not match its
// stored hash.
type IntegrityError struct {
	Path string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("snapshot: %s failed integrity verification", e.Path)
}

// zstd encoder and decoder are reused across calls; both are safe for
// concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("snapshot: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("snapshot: zstd decoder initialization failed: " + err.Error())
	}
}

// record is the CBOR shape of a snapshot payload.
type record struct {
	Source string       `cbor:"source,omitempty"`
	Quads  []recordQuad `cbor:"quads"`
}

type recordQuad struct {
	Subject   recordTerm `cbor:"s"`
	Predicate string     `cbor:"p"`
	Object    recordTerm `cbor:"o"`
	Graph     string     `cbor:"g,omitempty"`
}

// recordTerm is one tagged term. Kind selects the variant; literal
// fields are empty for the other kinds.
type recordTerm struct {
	Kind     string `cbor:"kind"`
	Value    string `cbor:"value"`
	Datatype string `cbor:"datatype,omitempty"`
	Language string `cbor:"language,omitempty"`
}

const (
	kindIRI     = "iri"
	kindLocal   = "local"
	kindBlank   = "blank"
	kindLiteral = "literal"
)

// Write stores the dataset at path, creating parent directories as
// needed. The file is written to a temporary name and renamed into
// place, so a crash never leaves a half-written snapshot behind. The
// change log is not persisted: a loaded snapshot always starts clean.
func Write(path string, ds *dataset.Dataset) error {
	rec := record{Source: string(ds.Source())}
	for _, q := range ds.Quads() {
		subject, err := termToRecord(q.Subject)
		if err != nil {
			return err
		}
		object, err := termToRecord(q.Object)
		if err != nil {
			return err
		}
		rec.Quads = append(rec.Quads, recordQuad{
			Subject:   subject,
			Predicate: string(q.Predicate),
			Object:    object,
			Graph:     string(q.Graph),
		})
	}

	encoded, err := codec.Marshal(rec)
	if err != nil {
		return fmt.Errorf("snapshot: failed to encode %s: %w", path, err)
	}
	payload := zstdEncoder.EncodeAll(encoded, nil)
	digest := payloadHash(payload)

	var buffer bytes.Buffer
	buffer.Grow(len(magic) + len(digest) + len(payload))
	buffer.Write(magic)
	buffer.Write(digest[:])
	buffer.Write(payload)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buffer.Bytes(), 0o644); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}

// Read loads the dataset stored at path, verifying payload integrity.
// The result carries the origin recorded at write time and an empty
// change log.
func Read(path string) (*dataset.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if len(raw) < len(magic)+32 || !bytes.Equal(raw[:len(magic)], magic) {
		return nil, fmt.Errorf("snapshot: %s is not a snapshot file", path)
	}

	var stored [32]byte
	copy(stored[:], raw[len(magic):len(magic)+32])
	payload := raw[len(magic)+32:]
	if payloadHash(payload) != stored {
		return nil, &IntegrityError{Path: path}
	}

	encoded, err := zstdDecoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot: failed to decompress %s: %w", path, err)
	}
	var rec record
	if err := codec.Unmarshal(encoded, &rec); err != nil {
		return nil, fmt.Errorf("snapshot: failed to decode %s: %w", path, err)
	}

	quads := make([]rdf.Quad, 0, len(rec.Quads))
	for _, rq := range rec.Quads {
		subject, err := subjectFromRecord(rq.Subject, path)
		if err != nil {
			return nil, err
		}
		object, err := termFromRecord(rq.Object, path)
		if err != nil {
			return nil, err
		}
		quads = append(quads, rdf.Quad{
			Subject:   subject,
			Predicate: rdf.IRI(rq.Predicate),
			Object:    object,
			Graph:     rdf.IRI(rq.Graph),
		})
	}

	ds := dataset.New(quads...)
	if rec.Source != "" {
		ds = ds.WithOrigin(rdf.IRI(rec.Source))
	}
	return ds.StartChangeLog(), nil
}

func payloadHash(payload []byte) [32]byte {
	hasher, err := blake3.NewKeyed(hashKey[:])
	if err != nil {
		panic("snapshot: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return digest
}

func termToRecord(term rdf.Term) (recordTerm, error) {
	switch t := term.(type) {
	case rdf.IRI:
		return recordTerm{Kind: kindIRI, Value: string(t)}, nil
	case rdf.LocalNode:
		return recordTerm{Kind: kindLocal, Value: t.Name}, nil
	case rdf.BlankNode:
		return recordTerm{Kind: kindBlank, Value: t.ID}, nil
	case rdf.Literal:
		return recordTerm{
			Kind:     kindLiteral,
			Value:    t.Value,
			Datatype: string(t.Datatype),
			Language: t.Language,
		}, nil
	default:
		return recordTerm{}, fmt.Errorf("snapshot: unsupported term %T", term)
	}
}

func subjectFromRecord(rt recordTerm, path string) (rdf.SubjectTerm, error) {
	term, err := termFromRecord(rt, path)
	if err != nil {
		return nil, err
	}
	subject, ok := term.(rdf.SubjectTerm)
	if !ok {
		return nil, fmt.Errorf("snapshot: %s holds a %s term in subject position", path, rt.Kind)
	}
	return subject, nil
}

func termFromRecord(rt recordTerm, path string) (rdf.Term, error) {
	switch rt.Kind {
	case kindIRI:
		return rdf.IRI(rt.Value), nil
	case kindLocal:
		return rdf.LocalNode{Name: rt.Value}, nil
	case kindBlank:
		return rdf.BlankNode{ID: rt.Value}, nil
	case kindLiteral:
		return rdf.Literal{
			Value:    rt.Value,
			Datatype: rdf.IRI(rt.Datatype),
			Language: rt.Language,
		}, nil
	default:
		return nil, fmt.Errorf("snapshot: %s holds a term of unknown kind %q", path, rt.Kind)
	}
}
