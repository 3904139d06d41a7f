// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package acl

import (
	"github.com/podgraph-foundation/podgraph/lib/dataset"
	"github.com/podgraph-foundation/podgraph/lib/rdf"
	"github.com/podgraph-foundation/podgraph/lib/thing"
	"github.com/podgraph-foundation/podgraph/lib/vocab"
)

// actor is one subject position a rule can grant to: an (actor
// predicate, actor object) statement.
type actor struct {
	predicate rdf.IRI
	object    rdf.Term
}

func agentActor(agent rdf.IRI) actor {
	return actor{predicate: vocab.ACLAgent, object: agent}
}

func groupActor(group rdf.IRI) actor {
	return actor{predicate: vocab.ACLAgentGroup, object: group}
}

func publicActor() actor {
	return actor{predicate: vocab.ACLAgentClass, object: vocab.FOAFAgent}
}

func authenticatedActor() actor {
	return actor{predicate: vocab.ACLAgentClass, object: vocab.ACLAuthenticatedAgent}
}

// SetAgentResourceAccess rewrites the list so the agent holds exactly
// the given modes on the resource via acl:accessTo rules, leaving
// every other actor's access and every other resource's rules
// untouched. The result must be saved back to the list's address to
// take effect.
func SetAgentResourceAccess(list *dataset.Dataset, resource, agent rdf.IRI, modes Modes) (*dataset.Dataset, error) {
	return setActorAccess(list, resource, agentActor(agent), modes, false)
}

// SetAgentDefaultAccess rewrites the list so the agent holds exactly
// the given modes on the children of the container via acl:default
// rules.
func SetAgentDefaultAccess(list *dataset.Dataset, container, agent rdf.IRI, modes Modes) (*dataset.Dataset, error) {
	return setActorAccess(list, container, agentActor(agent), modes, true)
}

// SetGroupResourceAccess rewrites the list so members of the group
// hold exactly the given modes on the resource.
func SetGroupResourceAccess(list *dataset.Dataset, resource, group rdf.IRI, modes Modes) (*dataset.Dataset, error) {
	return setActorAccess(list, resource, groupActor(group), modes, false)
}

// SetGroupDefaultAccess rewrites the list so members of the group hold
// exactly the given modes on the children of the container.
func SetGroupDefaultAccess(list *dataset.Dataset, container, group rdf.IRI, modes Modes) (*dataset.Dataset, error) {
	return setActorAccess(list, container, groupActor(group), modes, true)
}

// SetPublicResourceAccess rewrites the list so everyone holds exactly
// the given modes on the resource.
func SetPublicResourceAccess(list *dataset.Dataset, resource rdf.IRI, modes Modes) (*dataset.Dataset, error) {
	return setActorAccess(list, resource, publicActor(), modes, false)
}

// SetPublicDefaultAccess rewrites the list so everyone holds exactly
// the given modes on the children of the container.
func SetPublicDefaultAccess(list *dataset.Dataset, container rdf.IRI, modes Modes) (*dataset.Dataset, error) {
	return setActorAccess(list, container, publicActor(), modes, true)
}

// SetAuthenticatedResourceAccess rewrites the list so all logged-in
// actors hold exactly the given modes on the resource.
func SetAuthenticatedResourceAccess(list *dataset.Dataset, resource rdf.IRI, modes Modes) (*dataset.Dataset, error) {
	return setActorAccess(list, resource, authenticatedActor(), modes, false)
}

// SetAuthenticatedDefaultAccess rewrites the list so all logged-in
// actors hold exactly the given modes on the children of the
// container.
func SetAuthenticatedDefaultAccess(list *dataset.Dataset, container rdf.IRI, modes Modes) (*dataset.Dataset, error) {
	return setActorAccess(list, container, authenticatedActor(), modes, true)
}

// setActorAccess replaces one actor's access to one target within the
// list. Existing rules that name both the actor and the target are
// split in two so that nobody else's access changes: a remainder rule
// keeping the original subject and everything except the actor, and a
// carryover rule keeping the actor's grants for the rule's other
// targets. A fresh rule then states the requested modes; no rule is
// written when no mode is granted.
func setActorAccess(list *dataset.Dataset, target rdf.IRI, act actor, modes Modes, defaultScope bool) (*dataset.Dataset, error) {
	if _, err := rdf.ParseIRI(string(target)); err != nil {
		return nil, err
	}

	result := list.StartChangeLog()
	for _, rule := range Rules(list) {
		if !ruleNamesActor(rule, act) || !ruleCoversTarget(rule, target, defaultScope) {
			continue
		}

		remainder := rule.Without(act.predicate, act.object)
		if ruleHasActors(remainder) {
			var err error
			result, err = thing.Set(result, remainder)
			if err != nil {
				return nil, err
			}
		} else {
			result = thing.RemoveThing(result, remainder)
		}

		carryover := carryoverRule(rule, target, act, defaultScope)
		if ruleHasTargets(carryover) {
			var err error
			result, err = thing.Set(result, carryover)
			if err != nil {
				return nil, err
			}
		}
	}

	if modes.IsEmpty() {
		return result, nil
	}
	return thing.Set(result, newRule(target, act, modes, defaultScope))
}

func ruleNamesActor(rule Rule, act actor) bool {
	for _, object := range rule.Objects(act.predicate) {
		if rdf.TermsEqual(object, act.object) {
			return true
		}
	}
	return false
}

func ruleCoversTarget(rule Rule, target rdf.IRI, defaultScope bool) bool {
	if defaultScope {
		return rule.DefaultsFor(target)
	}
	return rule.AppliesTo(target)
}

var actorPredicates = []rdf.IRI{vocab.ACLAgent, vocab.ACLAgentGroup, vocab.ACLAgentClass}

func ruleHasActors(t thing.Thing) bool {
	for _, predicate := range actorPredicates {
		if len(t.Objects(predicate)) > 0 {
			return true
		}
	}
	return false
}

var scopePredicates = []rdf.IRI{vocab.ACLAccessTo, vocab.ACLDefault, vocab.ACLDefaultForNew}

func ruleHasTargets(t thing.Thing) bool {
	for _, predicate := range scopePredicates {
		if len(t.Objects(predicate)) > 0 {
			return true
		}
	}
	return false
}

// carryoverRule rebuilds a split rule under a fresh subject, keeping
// only the given actor and every target except the one being
// rewritten, so the actor retains whatever the original rule granted
// elsewhere.
func carryoverRule(rule Rule, target rdf.IRI, act actor, defaultScope bool) thing.Thing {
	stripped := rule.Thing
	for _, predicate := range actorPredicates {
		stripped = stripped.WithoutPredicate(predicate)
	}
	if defaultScope {
		stripped = stripped.Without(vocab.ACLDefault, target).
			Without(vocab.ACLDefaultForNew, target)
	} else {
		stripped = stripped.Without(vocab.ACLAccessTo, target)
	}

	carryover := thing.NewLocal()
	for _, q := range stripped.Quads {
		carryover = carryover.With(q.Predicate, q.Object)
	}
	return carryover.With(act.predicate, act.object)
}

// newRule builds a fresh rule granting the actor the given modes on
// the target. Default scope is always written as acl:default; the
// legacy acl:defaultForNew spelling is read-only.
func newRule(target rdf.IRI, act actor, modes Modes, defaultScope bool) thing.Thing {
	scope := vocab.ACLAccessTo
	if defaultScope {
		scope = vocab.ACLDefault
	}
	rule := thing.NewLocal().
		With(vocab.RDFType, vocab.ACLAuthorization).
		With(scope, target).
		With(act.predicate, act.object)
	if modes.Read {
		rule = rule.With(vocab.ACLMode, vocab.ACLRead)
	}
	if modes.Append {
		rule = rule.With(vocab.ACLMode, vocab.ACLAppend)
	}
	if modes.Write {
		rule = rule.With(vocab.ACLMode, vocab.ACLWrite)
	}
	if modes.Control {
		rule = rule.With(vocab.ACLMode, vocab.ACLControl)
	}
	return rule
}
