// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package acl

import (
	"github.com/podgraph-foundation/podgraph/lib/dataset"
	"github.com/podgraph-foundation/podgraph/lib/rdf"
	"github.com/podgraph-foundation/podgraph/lib/thing"
	"github.com/podgraph-foundation/podgraph/lib/vocab"
)

// Rule is one acl:Authorization Thing inside an access control list.
type Rule struct {
	thing.Thing
}

// Rules returns every acl:Authorization Thing in the list, in subject
// first-encounter order.
func Rules(list *dataset.Dataset) []Rule {
	var rules []Rule
	for _, t := range thing.All(list) {
		if t.HasIRI(vocab.RDFType, vocab.ACLAuthorization) {
			rules = append(rules, Rule{t})
		}
	}
	return rules
}

// Modes returns the modes the rule grants.
func (r Rule) Modes() Modes {
	return Modes{
		Read:    r.HasIRI(vocab.ACLMode, vocab.ACLRead),
		Append:  r.HasIRI(vocab.ACLMode, vocab.ACLAppend),
		Write:   r.HasIRI(vocab.ACLMode, vocab.ACLWrite),
		Control: r.HasIRI(vocab.ACLMode, vocab.ACLControl),
	}
}

// Agents returns the WebIDs of the individual actors the rule names.
func (r Rule) Agents() []rdf.IRI {
	return r.IRIs(vocab.ACLAgent)
}

// Groups returns the group listing addresses the rule names.
func (r Rule) Groups() []rdf.IRI {
	return r.IRIs(vocab.ACLAgentGroup)
}

// NamesAgent reports whether the rule names the agent directly. Group
// membership, public grants, and authenticated grants never satisfy
// this; those are separate actor queries.
func (r Rule) NamesAgent(agent rdf.IRI) bool {
	return r.HasIRI(vocab.ACLAgent, agent)
}

// NamesGroup reports whether the rule names the group.
func (r Rule) NamesGroup(group rdf.IRI) bool {
	return r.HasIRI(vocab.ACLAgentGroup, group)
}

// AllowsPublic reports whether the rule grants to everyone,
// authenticated or not.
func (r Rule) AllowsPublic() bool {
	return r.HasIRI(vocab.ACLAgentClass, vocab.FOAFAgent)
}

// AllowsAuthenticated reports whether the rule grants to all logged-in
// actors.
func (r Rule) AllowsAuthenticated() bool {
	return r.HasIRI(vocab.ACLAgentClass, vocab.ACLAuthenticatedAgent)
}

// AppliesTo reports whether the rule's acl:accessTo scope names the
// resource exactly.
func (r Rule) AppliesTo(resource rdf.IRI) bool {
	return r.HasIRI(vocab.ACLAccessTo, resource)
}

// DefaultsFor reports whether the rule supplies default access for the
// children of the container: acl:default, or its legacy spelling
// acl:defaultForNew, which is read as a synonym but never written.
func (r Rule) DefaultsFor(container rdf.IRI) bool {
	return r.HasIRI(vocab.ACLDefault, container) ||
		r.HasIRI(vocab.ACLDefaultForNew, container)
}
