// Package obo parses an OBO-like text stream into the axiom kinds
// elreasoner.AxiomStore consumes. It is an external parser collaborator:
// the core never imports this package, and this package never looks
// inside an AxiomStore's internals.
//
// Supported stanza fields, one [Term] block at a time:
//
//	id: <name>
//	is_a: <name> [! comment]
//	is_obsolete: true|false
//	relationship: <role> <target>
//
// Obsolete terms contribute no axioms: every is_a/relationship line of a
// stanza marked is_obsolete: true is dropped, whether it comes before or
// after that line. The obsolete term's own name is still interned as a
// concept, since its id: line is read first. Unknown concept and
// role names are interned on first sight, in the order they are seen.
package obo

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gitrdm/elreasoner/pkg/elreasoner"
)

// TopName and BottomName are the display names reserved for the
// universal and unsatisfiable concepts, matching the OWL idiom the
// original ontology tooling in this space uses.
const (
	TopName    = "owl:Thing"
	BottomName = "owl:Nothing"
)

// subsumption is validated before it becomes an AxiomStore call; it
// exists only so go-playground/validator can reject a record with an
// empty name (in practice, an is_a or relationship line in a stanza
// whose id: is empty). The names are already interned when the check
// runs.
type subsumption struct {
	Sub string `validate:"required"`
	Sup string `validate:"required"`
}

type relationship struct {
	Sub    string `validate:"required"`
	Role   string `validate:"required"`
	Target string `validate:"required"`
}

var validate = validator.New()

// Document is the parsed, but not yet store-backed, result of one OBO
// stream: interned concept/role names plus the raw subsumption and
// relationship axioms in terms of those interned ids.
type Document struct {
	Arena         *elreasoner.Arena
	Subsumptions  []subsumptionAxiom
	Relationships []relationshipAxiom
}

type subsumptionAxiom struct {
	Sub elreasoner.ConceptId
	Sup elreasoner.ConceptId
}

type relationshipAxiom struct {
	Sub    elreasoner.ConceptId
	Role   elreasoner.RoleId
	Target elreasoner.ConceptId
}

// Parse reads an OBO-like stream from r and returns the interned
// Document. Parse never fails on malformed individual lines beyond the
// fields it understands — it is deliberately permissive about
// unrecognized stanza fields, matching the original tooling's "ignore
// what we don't model" stance — but does fail on an I/O error from the
// underlying reader.
func Parse(r io.Reader) (*Document, error) {
	arena := elreasoner.NewArena(TopName, BottomName)
	doc := &Document{Arena: arena}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		inTerm      bool
		isObsolete  bool
		haveCurrent bool
		current     elreasoner.ConceptId
		// stanzaSubs and stanzaRels mark where the current stanza's
		// axioms begin, so an is_obsolete: true line can drop them.
		stanzaSubs, stanzaRels int
	)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "[Term]":
			inTerm = true
			haveCurrent = false
			isObsolete = false
			stanzaSubs, stanzaRels = len(doc.Subsumptions), len(doc.Relationships)
			continue
		case strings.HasPrefix(line, "["):
			inTerm = false
			haveCurrent = false
			continue
		}

		if !inTerm {
			continue
		}

		switch {
		case strings.HasPrefix(line, "id:"):
			name := strings.TrimSpace(line[len("id:"):])
			current = arena.InternConcept(name)
			haveCurrent = true
			continue
		case strings.HasPrefix(line, "is_obsolete:"):
			isObsolete = strings.Contains(line, "true")
			if isObsolete {
				doc.Subsumptions = doc.Subsumptions[:stanzaSubs]
				doc.Relationships = doc.Relationships[:stanzaRels]
			}
			continue
		}

		if isObsolete || !haveCurrent {
			continue
		}

		switch {
		case strings.HasPrefix(line, "is_a:"):
			rest := line[len("is_a:"):]
			target := strings.TrimSpace(strings.SplitN(rest, "!", 2)[0])
			if target == "" {
				continue
			}
			sup := arena.InternConcept(target)
			sub := subsumption{Sub: arena.ConceptName(current), Sup: arena.ConceptName(sup)}
			if err := validate.Struct(sub); err != nil {
				return nil, fmt.Errorf("obo: line %d: invalid is_a record: %w", lineNo, err)
			}
			doc.Subsumptions = append(doc.Subsumptions, subsumptionAxiom{Sub: current, Sup: sup})

		case strings.HasPrefix(line, "relationship:"):
			fields := strings.Fields(line[len("relationship:"):])
			if len(fields) < 2 {
				continue
			}
			roleName, targetName := fields[0], fields[1]
			role := arena.InternRole(roleName)
			target := arena.InternConcept(targetName)
			rel := relationship{Sub: arena.ConceptName(current), Role: roleName, Target: targetName}
			if err := validate.Struct(rel); err != nil {
				return nil, fmt.Errorf("obo: line %d: invalid relationship record: %w", lineNo, err)
			}
			doc.Relationships = append(doc.Relationships, relationshipAxiom{Sub: current, Role: role, Target: target})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obo: reading input: %w", err)
	}

	return doc, nil
}

// BuildStore constructs an elreasoner.AxiomStore from the parsed
// document, failing only if the document somehow references an id
// outside the arena's own interned range (which would indicate a bug in
// Parse, not malformed input — interning always assigns ids densely
// from zero).
func (d *Document) BuildStore() (*elreasoner.AxiomStore, error) {
	store, err := elreasoner.NewAxiomStore(d.Arena.NumConcepts(), d.Arena.NumRoles())
	if err != nil {
		return nil, fmt.Errorf("obo: building axiom store: %w", err)
	}
	for _, s := range d.Subsumptions {
		if err := store.AddSubsumption(s.Sub, s.Sup); err != nil {
			return nil, fmt.Errorf("obo: %w", err)
		}
	}
	for _, r := range d.Relationships {
		if err := store.AddExistRight(r.Sub, r.Role, r.Target); err != nil {
			return nil, fmt.Errorf("obo: %w", err)
		}
	}
	return store, nil
}
