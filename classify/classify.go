// Package classify implements the input classifier: it inspects an
// input's shape and, for text, its content, to route it to one of
// three encoders.
package classify

import (
	"regexp"

	"github.com/samber/lo"
)

// Kind is the closed set of routes the classifier can return.
type Kind string

const (
	KindStructuredData Kind = "StructuredData"
	KindTranscript     Kind = "Transcript"
	KindPrompt         Kind = "Prompt"
	KindUnknown        Kind = "Unknown"
)

var speakerLinePattern = regexp.MustCompile(`(?im)^\s*(agent|customer|caller|rep|user|system)\s*:`)

// Classify decides the Kind for input, which must be one of string,
// map[string]any, []any, or []map[string]any — the closed InputKind
// union. Any other Go type is Unknown.
func Classify(input any) Kind {
	switch v := input.(type) {
	case map[string]any:
		return KindStructuredData
	case []map[string]any:
		return classifySlice(len(v))
	case []any:
		if isMappingSlice(v) {
			return classifySlice(len(v))
		}
		return KindUnknown
	case string:
		return classifyText(v)
	default:
		return KindUnknown
	}
}

func classifySlice(n int) Kind {
	if n == 0 {
		return KindUnknown
	}
	return KindStructuredData
}

func isMappingSlice(items []any) bool {
	if len(items) == 0 {
		return false
	}
	return lo.EveryBy(items, func(item any) bool {
		_, ok := item.(map[string]any)
		return ok
	})
}

func classifyText(text string) Kind {
	if text == "" {
		return KindUnknown
	}

	if countSpeakerLines(text) >= 2 {
		return KindTranscript
	}

	return KindPrompt
}

func countSpeakerLines(text string) int {
	matches := speakerLinePattern.FindAllStringIndex(text, -1)
	return len(matches)
}
