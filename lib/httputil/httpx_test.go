// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package httputil

import (
	"strings"
	"testing"
)

func TestReadResponseBounded(t *testing.T) {
	body := strings.NewReader("hello")
	data, err := ReadResponse(body)
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("data = %q", data)
	}
}

func TestParseLinkRelation(t *testing.T) {
	cases := []struct {
		name   string
		values []string
		rel    string
		target string
		found  bool
	}{
		{
			name:   "simple acl link",
			values: []string{`<resource.acl>; rel="acl"`},
			rel:    "acl",
			target: "resource.acl",
			found:  true,
		},
		{
			name:   "multiple links one value",
			values: []string{`<http://www.w3.org/ns/ldp#Resource>; rel="type", <.acl>; rel="acl"`},
			rel:    "acl",
			target: ".acl",
			found:  true,
		},
		{
			name:   "bare rel token",
			values: []string{`<meta.ttl>; rel=describedby`},
			rel:    "describedby",
			target: "meta.ttl",
			found:  true,
		},
		{
			name:   "space separated rel types",
			values: []string{`<x.acl>; rel="acl http://www.w3.org/ns/solid/terms#acl"`},
			rel:    "acl",
			target: "x.acl",
			found:  true,
		},
		{
			name:   "multiple header values",
			values: []string{`<a>; rel="type"`, `<b.acl>; rel="acl"`},
			rel:    "acl",
			target: "b.acl",
			found:  true,
		},
		{
			name:   "absent",
			values: []string{`<a>; rel="type"`},
			rel:    "acl",
			found:  false,
		},
		{
			name:   "comma inside target",
			values: []string{`<https://pod.example/a,b.acl>; rel="acl"`},
			rel:    "acl",
			target: "https://pod.example/a,b.acl",
			found:  true,
		},
		{
			name:   "case insensitive rel",
			values: []string{`<x.acl>; REL="ACL"`},
			rel:    "acl",
			target: "x.acl",
			found:  true,
		},
	}
	for _, tc := range cases {
		target, found := ParseLinkRelation(tc.values, tc.rel)
		if found != tc.found || target != tc.target {
			t.Errorf("%s: ParseLinkRelation = (%q, %v), want (%q, %v)", tc.name, target, found, tc.target, tc.found)
		}
	}
}
