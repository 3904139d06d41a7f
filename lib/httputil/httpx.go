// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package httputil provides HTTP I/O helpers for the Podgraph client.
//
// Response helpers (ReadResponse, ErrorBody) bound all response body
// reads at MaxResponseSize to prevent unbounded memory allocation from
// a misbehaving or malicious server. Resource representations Podgraph
// fetches are text documents orders of magnitude below the limit.
//
// ParseLinkRelation extracts a relation target from HTTP Link headers
// (RFC 8288 surface syntax, the subset pod servers emit), which is how
// the address of a resource's governing access list is discovered.
package httputil

import (
	"io"
	"strings"
)

// MaxResponseSize is the bound on response body reads: 64 MB. This
// exists solely to prevent a pathological response from exhausting
// memory; legitimate triple documents are far smaller, and the limit
// is generous enough to never interfere with normal operation.
const MaxResponseSize int64 = 64 << 20

// ReadResponse reads a response body up to MaxResponseSize bytes. Use
// instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// ErrorBody reads an HTTP error response body and returns it as a
// string for diagnostic error messages. Read errors are silently
// ignored — a partial or empty body is still useful in an error
// message.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	return string(data)
}

// ParseLinkRelation scans Link header values for a link with the given
// rel and returns its target (the text between the angle brackets,
// unresolved). Header values may each carry multiple comma-separated
// links, and each link multiple semicolon-separated parameters. The
// rel parameter value may be quoted or bare.
func ParseLinkRelation(headerValues []string, rel string) (string, bool) {
	for _, headerValue := range headerValues {
		for _, link := range splitLinks(headerValue) {
			target, parameters, ok := splitLink(link)
			if !ok {
				continue
			}
			for _, parameter := range parameters {
				name, value, ok := strings.Cut(parameter, "=")
				if !ok || !strings.EqualFold(strings.TrimSpace(name), "rel") {
					continue
				}
				value = strings.Trim(strings.TrimSpace(value), `"`)
				// A rel parameter may list several space-separated
				// relation types.
				for _, relType := range strings.Fields(value) {
					if strings.EqualFold(relType, rel) {
						return target, true
					}
				}
			}
		}
	}
	return "", false
}

// splitLinks splits a Link header value on the commas that separate
// links, ignoring commas inside angle brackets or quotes.
func splitLinks(headerValue string) []string {
	var links []string
	depth := 0
	quoted := false
	start := 0
	for i := 0; i < len(headerValue); i++ {
		switch headerValue[i] {
		case '<':
			if !quoted {
				depth++
			}
		case '>':
			if !quoted && depth > 0 {
				depth--
			}
		case '"':
			quoted = !quoted
		case ',':
			if depth == 0 && !quoted {
				links = append(links, headerValue[start:i])
				start = i + 1
			}
		}
	}
	links = append(links, headerValue[start:])
	return links
}

// splitLink separates one link into its <target> and parameter list.
func splitLink(link string) (target string, parameters []string, ok bool) {
	link = strings.TrimSpace(link)
	if !strings.HasPrefix(link, "<") {
		return "", nil, false
	}
	end := strings.IndexByte(link, '>')
	if end < 0 {
		return "", nil, false
	}
	target = link[1:end]
	rest := link[end+1:]
	for _, parameter := range strings.Split(rest, ";") {
		parameter = strings.TrimSpace(parameter)
		if parameter != "" {
			parameters = append(parameters, parameter)
		}
	}
	return target, parameters, true
}
