// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package vocab holds the vocabulary IRI constants used across
// Podgraph: the RDF core terms, the Web Access Control (acl:)
// vocabulary, and the handful of FOAF, LDP, and XSD terms the client
// touches. Constants are raw IRI conversions — the addresses are
// compile-time known and well-formed.
package vocab

import "github.com/podgraph-foundation/podgraph/lib/rdf"

// RDF core namespace.
const rdfNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

const (
	// RDFType is rdf:type.
	RDFType = rdf.IRI(rdfNS + "type")

	// RDFLangString is the datatype of language-tagged literals.
	RDFLangString = rdf.IRI(rdfNS + "langString")
)

// XSD namespace.
const xsdNS = "http://www.w3.org/2001/XMLSchema#"

const (
	// XSDString is the default literal datatype.
	XSDString = rdf.IRI(xsdNS + "string")

	// XSDBoolean is the boolean literal datatype.
	XSDBoolean = rdf.IRI(xsdNS + "boolean")

	// XSDInteger is the integer literal datatype.
	XSDInteger = rdf.IRI(xsdNS + "integer")

	// XSDDateTime is the dateTime literal datatype.
	XSDDateTime = rdf.IRI(xsdNS + "dateTime")
)

// Web Access Control namespace. Rules in a governing list are
// acl:Authorization Things scoped with acl:accessTo (the exact
// resource) or acl:default (children of a container).
const aclNS = "http://www.w3.org/ns/auth/acl#"

const (
	// ACLAuthorization is the rule class.
	ACLAuthorization = rdf.IRI(aclNS + "Authorization")

	// ACLAccessTo scopes a rule to the exact resource named.
	ACLAccessTo = rdf.IRI(aclNS + "accessTo")

	// ACLDefault scopes a rule to the children of the container named,
	// never the container itself.
	ACLDefault = rdf.IRI(aclNS + "default")

	// ACLDefaultForNew is the legacy spelling of acl:default, still
	// emitted by older servers. Read as a synonym, never written.
	ACLDefaultForNew = rdf.IRI(aclNS + "defaultForNew")

	// ACLAgent names an individual actor by WebID.
	ACLAgent = rdf.IRI(aclNS + "agent")

	// ACLAgentGroup names a group of actors by group listing address.
	ACLAgentGroup = rdf.IRI(aclNS + "agentGroup")

	// ACLAgentClass names a class of actors; see FOAFAgent and
	// ACLAuthenticatedAgent for the two classes with defined meaning.
	ACLAgentClass = rdf.IRI(aclNS + "agentClass")

	// ACLAuthenticatedAgent is the agent class of all logged-in actors.
	ACLAuthenticatedAgent = rdf.IRI(aclNS + "AuthenticatedAgent")

	// ACLMode links a rule to a granted access mode.
	ACLMode = rdf.IRI(aclNS + "mode")

	// ACLRead grants reading the resource.
	ACLRead = rdf.IRI(aclNS + "Read")

	// ACLAppend grants adding to, but not rewriting, the resource.
	ACLAppend = rdf.IRI(aclNS + "Append")

	// ACLWrite grants rewriting the resource; implies Append.
	ACLWrite = rdf.IRI(aclNS + "Write")

	// ACLControl grants reading and rewriting the governing list
	// itself.
	ACLControl = rdf.IRI(aclNS + "Control")
)

// FOAFAgent is the agent class of every actor, authenticated or not —
// the "public" sentinel in rule actor position.
const FOAFAgent = rdf.IRI("http://xmlns.com/foaf/0.1/Agent")

// LDP namespace, used when creating resources inside containers.
const ldpNS = "http://www.w3.org/ns/ldp#"

const (
	// LDPContains links a container to its members.
	LDPContains = rdf.IRI(ldpNS + "contains")

	// LDPBasicContainer is the container class requested on creation.
	LDPBasicContainer = rdf.IRI(ldpNS + "BasicContainer")
)
