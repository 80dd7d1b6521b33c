package tokengrammar

import "strings"

// Token is one parsed bracket group: `[TAG:arg1:arg2:…]` (grounded on
// ai/vectorstore/filter/ast's node shapes, flattened to this
// grammar's one production). Kind is the tag (e.g. "REQ", "CTX",
// "ISSUE"); Arg is the first colon-delimited segment after the tag
// (often itself a "KEY=value" pair); Attrs holds any further
// colon-delimited segments.
type Token struct {
	Kind  string
	Arg   string
	Attrs []string
}

// Raw reconstructs the original `[...]` text for this Token.
func (t Token) Raw() string {
	parts := append([]string{t.Kind}, t.Arg)
	parts = append(parts, t.Attrs...)
	var nonEmpty []string
	for i, p := range parts {
		if i == 0 || p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return "[" + strings.Join(nonEmpty, ":") + "]"
}
