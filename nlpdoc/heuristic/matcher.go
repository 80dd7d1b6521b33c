package heuristic

import (
	"regexp"
	"sort"
	"strings"

	"github.com/clmhq/clm/nlpdoc"
)

// Matcher is a minimal token-level matcher supporting LOWER-set
// patterns with "?"/"+"/"*"/"" OP quantifiers, satisfying
// nlpdoc.Matcher over this package's Doc implementation.
type Matcher struct {
	patterns map[string][]nlpdoc.MatchToken
}

// NewMatcher returns an empty Matcher.
func NewMatcher() *Matcher {
	return &Matcher{patterns: map[string][]nlpdoc.MatchToken{}}
}

var _ nlpdoc.Matcher = (*Matcher)(nil)

func (m *Matcher) AddPattern(name string, pattern []nlpdoc.MatchToken) {
	m.patterns[name] = pattern
}

// Matches runs every registered pattern against doc's token stream,
// greedily expanding "+"/"*" quantifiers and returning every span
// found. Patterns run in name order so repeated calls yield the same
// match sequence.
func (m *Matcher) Matches(doc nlpdoc.Doc) []nlpdoc.Match {
	tokens := doc.Tokens()
	names := make([]string, 0, len(m.patterns))
	for name := range m.patterns {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []nlpdoc.Match
	for _, name := range names {
		pattern := m.patterns[name]
		for start := 0; start < len(tokens); start++ {
			if end, ok := matchAt(tokens, start, pattern); ok {
				out = append(out, nlpdoc.Match{
					Name:  name,
					Start: tokens[start].Start,
					End:   tokens[end-1].End,
					Text:  joinText(tokens[start:end]),
				})
			}
		}
	}
	return out
}

func matchAt(tokens []nlpdoc.Token, pos int, pattern []nlpdoc.MatchToken) (int, bool) {
	ti := pos
	for _, pt := range pattern {
		switch pt.Op {
		case "?":
			if ti < len(tokens) && tokenMatches(tokens[ti], pt.Lower) {
				ti++
			}
		case "*":
			for ti < len(tokens) && tokenMatches(tokens[ti], pt.Lower) {
				ti++
			}
		case "+":
			matched := 0
			for ti < len(tokens) && tokenMatches(tokens[ti], pt.Lower) {
				ti++
				matched++
			}
			if matched == 0 {
				return pos, false
			}
		default:
			if ti >= len(tokens) || !tokenMatches(tokens[ti], pt.Lower) {
				return pos, false
			}
			ti++
		}
	}
	if ti == pos {
		return pos, false
	}
	return ti, true
}

func tokenMatches(t nlpdoc.Token, lower []string) bool {
	tl := strings.ToLower(t.Text)
	for _, l := range lower {
		if tl == l {
			return true
		}
	}
	return false
}

func joinText(tokens []nlpdoc.Token) string {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Text
	}
	return strings.Join(words, " ")
}

// EntityRuler layers label+regex rules on top of a Provider's base
// NER, taking precedence over overlapping base entities.
type EntityRuler struct {
	rules []rulerRule
}

type rulerRule struct {
	label nlpdoc.EntityLabel
	re    *regexp.Regexp
}

// NewEntityRuler returns an empty EntityRuler.
func NewEntityRuler() *EntityRuler {
	return &EntityRuler{}
}

var _ nlpdoc.EntityRuler = (*EntityRuler)(nil)

// AddRule registers a label+regex rule. A pattern that fails to
// compile panics, the same configuration-time failure mode as the
// language packs' own rule tables.
func (r *EntityRuler) AddRule(label nlpdoc.EntityLabel, pattern string) {
	r.rules = append(r.rules, rulerRule{label: label, re: regexp.MustCompile(pattern)})
}

// Augment returns doc's entities overlaid with rule matches: a rule
// span displaces any base entity it overlaps, and the combined list is
// returned sorted by start offset.
func (r *EntityRuler) Augment(doc nlpdoc.Doc) []nlpdoc.Entity {
	text := doc.Text()
	var ruled []nlpdoc.Entity
	for _, rule := range r.rules {
		for _, loc := range rule.re.FindAllStringIndex(text, -1) {
			ruled = append(ruled, nlpdoc.Entity{
				Text:  text[loc[0]:loc[1]],
				Label: rule.label,
				Start: loc[0],
				End:   loc[1],
			})
		}
	}

	out := make([]nlpdoc.Entity, len(ruled))
	copy(out, ruled)
	for _, base := range doc.Entities() {
		displaced := false
		for _, e := range ruled {
			if base.Start < e.End && e.Start < base.End {
				displaced = true
				break
			}
		}
		if !displaced {
			out = append(out, base)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
