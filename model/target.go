// Package model defines the intermediate representation shared by the
// prompt and transcript encoders: the intent, target, context,
// extraction-field, and output-schema structures that sit between raw
// text and a serialized token stream.
package model

import (
	"sort"
	"strings"
)

// bannedAttributeKeys can never appear on a Target's attribute map.
// They collide with top-level token kinds or reserved names.
var bannedAttributeKeys = map[string]struct{}{
	"CONTEXT":     {},
	"TOPIC_HINT":  {},
	"RAW":         {},
	"FORMAT_HINT": {},
	"CTX":         {},
	"REQ":         {},
}

// allowedTargetAttributes declares, per TARGET token, which attribute
// keys may be attached. An empty (absent) entry means no restriction.
// CONTEXT is deliberately absent everywhere: it is a banned key, so an
// allow-set entry for it could never be reached.
var allowedTargetAttributes = map[string]map[string]struct{}{
	"CALL":       keySet("DURATION", "LANG"),
	"MEETING":    keySet("DURATION", "LANG"),
	"CODE":       keySet("LANG", "FILE_TYPE", "DOMAIN"),
	"CONCEPT":    keySet("TOPIC", "DOMAIN"),
	"TICKET":     keySet("STATUS", "ISSUE", "PRIORITY", "DOMAIN"),
	"TRANSCRIPT": keySet("DURATION", "TYPE", "DOMAIN"),
	"DOCUMENT":   keySet("TYPE", "DOMAIN"),
	"CONTENT":    keySet("SUBJECT", "DOMAIN"),
	"ITEMS":      keySet("SUBJECT", "DOMAIN"),
	"ANSWER":     keySet("SUBJECT", "TOPIC", "DOMAIN"),
	"RESULT":     keySet("TYPE", "DOMAIN"),
	"PROCEDURE":  keySet("TOPIC", "DOMAIN"),
	"FACT":       keySet("TOPIC", "DOMAIN"),
}

func keySet(keys ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}

// defaultDomains maps a TARGET token to the DOMAIN value that is
// redundant (and therefore omitted) when serialized.
var defaultDomains = map[string]string{
	"CALL":    "SUPPORT",
	"TICKET":  "SUPPORT",
	"MEETING": "SUPPORT",
}

// Target is the object an intent operates on: a single TARGET token
// with an optional domain and a set of uppercase attributes.
type Target struct {
	Token      string
	Domain     string
	Attributes map[string]string
}

// NewTarget constructs a Target with an initialized attribute map.
func NewTarget(token string) *Target {
	return &Target{
		Token:      strings.ToUpper(token),
		Attributes: map[string]string{},
	}
}

// Set assigns an attribute, enforcing the banned-key and
// redundant-value invariants. A write that would violate hygiene is
// dropped silently rather than erroring.
func (t *Target) Set(key, value string) {
	key = strings.ToUpper(key)
	if _, banned := bannedAttributeKeys[key]; banned {
		return
	}
	if value == "" {
		return
	}
	if strings.EqualFold(value, t.Token) {
		return
	}
	if allowed, ok := allowedTargetAttributes[t.Token]; ok && len(allowed) > 0 {
		if _, permitted := allowed[key]; !permitted {
			return
		}
	}
	if t.Attributes == nil {
		t.Attributes = map[string]string{}
	}
	// First-writer-wins.
	if _, exists := t.Attributes[key]; exists {
		return
	}
	t.Attributes[key] = value
}

// Merge copies attributes from other into t using first-writer-wins
// semantics, used when normalizing several candidate Targets into one
// primary Target.
func (t *Target) Merge(other *Target) {
	if other == nil {
		return
	}
	keys := make([]string, 0, len(other.Attributes))
	for k := range other.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t.Set(k, other.Attributes[k])
	}
}

// BuildToken builds the canonical `[TARGET:...]` serialization: upper-case
// token, then DOMAIN, then attribute keys in sorted order. DOMAIN is
// emitted only for tokens that carry a default-domain mapping, and
// only when the derived domain differs from that default; tokens
// without a mapping never serialize one.
func (t *Target) BuildToken() string {
	var b strings.Builder
	b.WriteString("[TARGET:")
	b.WriteString(t.Token)

	if t.Domain != "" {
		domain := strings.ToUpper(t.Domain)
		if def, ok := defaultDomains[t.Token]; ok && def != domain && domain != "DEFAULT" {
			b.WriteString(":DOMAIN=")
			b.WriteString(domain)
		}
	}

	keys := make([]string, 0, len(t.Attributes))
	for k := range t.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(":")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(t.Attributes[k])
	}

	b.WriteString("]")
	return b.String()
}

// Clone returns a deep copy, used when a target candidate needs to be
// mutated independently of the list it came from.
func (t *Target) Clone() *Target {
	clone := &Target{
		Token:      t.Token,
		Domain:     t.Domain,
		Attributes: make(map[string]string, len(t.Attributes)),
	}
	for k, v := range t.Attributes {
		clone.Attributes[k] = v
	}
	return clone
}

// targetPriority orders candidate targets during normalization;
// tokens absent from the list rank last.
var targetPriority = []string{
	"TRANSCRIPT", "CALL", "MEETING", "TICKET", "EMAIL", "REPORT",
	"DOCUMENT", "CODE", "DATA", "QUERY", "CONTENT", "ITEMS", "RESULT",
	"ANSWER", "CONCEPT",
}

func priorityRank(token string) int {
	for i, t := range targetPriority {
		if t == token {
			return i
		}
	}
	return len(targetPriority)
}

// NormalizeTargets picks the primary target from a list of candidates
// by priority, merges the rest's attributes into it, and returns the
// single normalized Target. Returns nil for an empty input.
func NormalizeTargets(candidates []*Target) *Target {
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	bestRank := priorityRank(best.Token)
	for _, c := range candidates[1:] {
		if r := priorityRank(c.Token); r < bestRank {
			best, bestRank = c, r
		}
	}

	primary := best.Clone()
	for _, c := range candidates {
		if c == best {
			continue
		}
		primary.Merge(c)
	}
	return primary
}
