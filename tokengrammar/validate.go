package tokengrammar

import (
	"fmt"
	"regexp"
	"strings"
)

// reBracketGroup is the grammar for one bracket group: an upper-snake
// tag, optionally followed by ':' and any non-']' content.
var reBracketGroup = regexp.MustCompile(`^\[[A-Z_]+(:[^]]*)?\]$`)

// Validate checks a compressed output string against the bracketed
// token grammar: balanced brackets, each group matching
// `\[[A-Z_]+(:[^]]*)?\]`, and exactly one space separating
// consecutive groups. It returns the first violation found.
func Validate(compressed string) error {
	if err := checkBalanced(compressed); err != nil {
		return err
	}

	groups := splitGroups(compressed)
	for _, g := range groups {
		if !reBracketGroup.MatchString(g) {
			return fmt.Errorf("tokengrammar: malformed bracket group %q", g)
		}
	}

	if _, err := NewParser(compressed).Parse(); err != nil {
		return err
	}

	return nil
}

// Parse runs the full lexer → parser pipeline and returns the AST,
// for callers that want the structured bracket groups rather than a
// yes/no validity check.
func Parse(compressed string) ([]Token, error) {
	return NewParser(compressed).Parse()
}

func checkBalanced(s string) error {
	depth := 0
	for i, r := range s {
		switch r {
		case '[':
			if depth > 0 {
				return fmt.Errorf("tokengrammar: nested '[' at offset %d", i)
			}
			depth++
		case ']':
			depth--
			if depth < 0 {
				return fmt.Errorf("tokengrammar: unmatched ']' at offset %d", i)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("tokengrammar: unmatched '[' (unterminated bracket group)")
	}
	return nil
}

// splitGroups splits a compressed string into its top-level `[...]`
// substrings, used by Validate to check each group against the
// grammar regex independently of the parser's error reporting.
func splitGroups(s string) []string {
	if s == "" {
		return nil
	}
	var groups []string
	for _, part := range strings.Split(s, " ") {
		if part != "" {
			groups = append(groups, part)
		}
	}
	return groups
}
