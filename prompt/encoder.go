package prompt

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/clmhq/clm/envelope"
	"github.com/clmhq/clm/lang"
	"github.com/clmhq/clm/model"
	"github.com/clmhq/clm/nlpdoc"
)

// Encoder is the system-prompt encoder facade: it wires the intent
// detector, target extractor, attribute enhancer/parser, and
// output-schema analyzer together and serializes their combined
// result via Assemble.
type Encoder struct {
	Vocab  lang.Vocabulary
	Rules  lang.Rules
	NLP    nlpdoc.Provider
	Config envelope.PromptConfig
}

// NewEncoder constructs a prompt Encoder from an immutable language
// pack, NLP provider, and prompt configuration.
func NewEncoder(v lang.Vocabulary, r lang.Rules, provider nlpdoc.Provider, cfg envelope.PromptConfig) *Encoder {
	return &Encoder{Vocab: v, Rules: r, NLP: provider, Config: cfg}
}

var reHasDigit = regexp.MustCompile(`\d`)
var reHasURL = regexp.MustCompile(`(?i)https?://`)

// Encode runs the full prompt pipeline over text and returns the
// envelope the caller serializes or inspects.
// verbose, when true, collects a trace of the pipeline's decisions
// into metadata["trace"] rather than printing it.
func (e *Encoder) Encode(text string, verbose bool, metadata map[string]any) *envelope.CLMOutput {
	doc := e.NLP.Parse(text)

	intent := DetectIntent(e.Vocab, doc, text)
	target := ExtractTarget(e.Vocab, e.Rules, doc, text, intent.Token)
	target = EnhanceTarget(e.Vocab, e.Rules, doc, text, target)
	extraction := ParseExtractionFields(e.Vocab, text)
	contexts := ParseContexts(e.Rules, text)
	schema := AnalyzeOutputSchema(nil, text, e.Config.InferTypes, e.Config.AddAttrs)

	compressed := Assemble(intent, target, extraction, contexts, schema)

	meta := e.buildMetadata(doc, text, intent, target, extraction, contexts, schema, metadata)
	if quant, ok := ParseQuantifier(e.Rules, doc, text); ok {
		meta["quantifier"] = quant.Label
		meta["quantifier_value"] = quant.Value
	}
	if specs := ParseSpecifications(e.Rules, doc, text); len(specs) > 0 {
		meta["specifications"] = specs
	}
	if verbose {
		meta["trace"] = []string{
			"intent=" + string(intent.Token),
			"target=" + targetToken(target),
			"contexts=" + strconv.Itoa(len(contexts)),
		}
	}
	out := envelope.New(text, envelope.ComponentSystemPrompt, compressed, meta)
	out.Metadata["compressed_length"] = len(out.Compressed)
	return out
}

func targetToken(t *model.Target) string {
	if t == nil {
		return ""
	}
	return t.Token
}

func (e *Encoder) buildMetadata(doc nlpdoc.Doc, text string, intent *model.Intent, target *model.Target, extraction *model.ExtractionField, contexts []model.Context, schema *model.OutputSchema, caller map[string]any) map[string]any {
	meta := map[string]any{}
	for k, v := range caller {
		meta[k] = v
	}

	verbs := make([]string, 0)
	for _, t := range doc.Tokens() {
		if t.POS == nlpdoc.POSVerb {
			verbs = append(verbs, t.Lemma)
		}
	}
	chunks := make([]string, 0, len(doc.NounChunks()))
	for _, c := range doc.NounChunks() {
		chunks = append(chunks, c.Text)
	}

	hasCode := false
	tl := strings.ToLower(text)
	for _, kw := range e.Rules.CodeIndicators() {
		if strings.Contains(tl, kw) {
			hasCode = true
			break
		}
	}

	hasURLs := reHasURL.MatchString(text)
	if !hasURLs {
		for _, ent := range doc.Entities() {
			if ent.Label == nlpdoc.EntityURL {
				hasURLs = true
				break
			}
		}
	}

	numTargets := 0
	if target != nil {
		numTargets = 1
	}

	meta["original_length"] = len(text)
	meta["language"] = e.Config.Lang
	meta["has_numbers"] = reHasDigit.MatchString(text)
	meta["has_urls"] = hasURLs
	meta["num_intents"] = 1
	meta["num_targets"] = numTargets
	meta["verbs"] = verbs
	meta["noun_chunks"] = chunks
	meta["has_code_indicators"] = hasCode
	meta["unmatched_verbs"] = sortedCopy(intent.UnmatchedVerbs)
	meta["intents"] = intent
	meta["target"] = target
	meta["extractions"] = extraction
	meta["contexts"] = contexts
	meta["output_format"] = schema
	return meta
}

func sortedCopy(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	sort.Strings(out)
	return out
}
