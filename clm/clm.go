// Package clm is the top-level facade: it classifies an input and
// dispatches it to the prompt, transcript, or structured-data encoder
// configured for it, wiring together the language pack, NLP provider,
// and per-component configuration the rest of the module exposes.
package clm

import (
	"errors"
	"fmt"

	"github.com/clmhq/clm/classify"
	"github.com/clmhq/clm/envelope"
	"github.com/clmhq/clm/lang"
	"github.com/clmhq/clm/lang/en"
	"github.com/clmhq/clm/nlpdoc"
	"github.com/clmhq/clm/nlpdoc/heuristic"
	"github.com/clmhq/clm/prompt"
	"github.com/clmhq/clm/structured"
	"github.com/clmhq/clm/tokencount"
	"github.com/clmhq/clm/transcript"
)

// ErrUnsupportedLang is returned from New when no language pack is
// registered for the requested code: a configuration-time failure
// that prevents construction.
var ErrUnsupportedLang = errors.New("clm: unsupported language")

// Config collects every construction-time input.
type Config struct {
	Lang       string
	Structured envelope.StructuredDataConfig
	Prompt     envelope.PromptConfig
	NLP        nlpdoc.Provider
	Tokenizer  tokencount.Tokenizer
}

// Option configures a Config. Options run in the order passed to New.
type Option func(*Config)

// WithLang selects the vocabulary+rules bundle ({en, es, pt, fr, …};
// only "en" ships with this module).
func WithLang(code string) Option {
	return func(c *Config) { c.Lang = code }
}

// WithStructured overrides the structured-data encoder configuration.
func WithStructured(cfg envelope.StructuredDataConfig) Option {
	return func(c *Config) { c.Structured = cfg }
}

// WithPrompt overrides the prompt encoder configuration.
func WithPrompt(cfg envelope.PromptConfig) Option {
	return func(c *Config) { c.Prompt = cfg }
}

// WithNLPProvider overrides the NLP provider (defaults to
// nlpdoc/heuristic).
func WithNLPProvider(p nlpdoc.Provider) Option {
	return func(c *Config) { c.NLP = p }
}

// WithTokenizer stores a precise tokencount.Tokenizer in
// Config.Tokenizer. Encode does not read it; CLMOutput.PreciseTokenCounts
// takes its tokenizer as an argument.
func WithTokenizer(t tokencount.Tokenizer) Option {
	return func(c *Config) { c.Tokenizer = t }
}

// CLM is the constructed facade: an immutable language pack, NLP
// provider, and the three per-component encoders, with no mutable
// shared state.
type CLM struct {
	cfg        Config
	vocab      lang.Vocabulary
	rules      lang.Rules
	prompt     *prompt.Encoder
	transcript *transcript.Encoder
	structured *structured.Encoder
}

// New builds a CLM from options, resolving the language pack and
// failing fast — at configuration time, before any encoder is
// constructed — if it can't be resolved or its New() panics. The
// lang/en patterns compile at package init, so a bad pattern there
// panics at program start, before New runs.
func New(opts ...Option) (c *CLM, err error) {
	cfg := Config{
		Lang:       "en",
		Structured: envelope.DefaultStructuredDataConfig(),
		Prompt:     envelope.DefaultPromptConfig(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Prompt.Lang == "" {
		cfg.Prompt.Lang = cfg.Lang
	}
	if cfg.NLP == nil {
		cfg.NLP = heuristic.New()
	}

	vocab, rules, err := resolveLangPack(cfg.Lang)
	if err != nil {
		return nil, err
	}

	c = &CLM{
		cfg:        cfg,
		vocab:      vocab,
		rules:      rules,
		prompt:     prompt.NewEncoder(vocab, rules, cfg.NLP, cfg.Prompt),
		transcript: transcript.NewEncoder(vocab, rules, cfg.NLP),
		structured: structured.NewEncoder(cfg.Structured),
	}
	return c, nil
}

// resolveLangPack looks up the vocabulary+rules bundle for code,
// converting a bad-pattern panic in a language pack's New() into a
// returned, non-panicking error.
func resolveLangPack(code string) (v lang.Vocabulary, r lang.Rules, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("clm: language pack %q failed to initialize: %v", code, rec)
		}
	}()

	switch code {
	case "en", "":
		return en.NewVocabulary(), en.New(), nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedLang, code)
	}
}

// Encode classifies input and dispatches it to the matching encoder.
// An input the classifier can't route returns (nil, nil) rather than
// an error — the caller receives a null result, not an exception.
func (c *CLM) Encode(input any, verbose bool, metadata map[string]any) (*envelope.CLMOutput, error) {
	switch classify.Classify(input) {
	case classify.KindPrompt:
		text, _ := input.(string)
		return c.prompt.Encode(text, verbose, metadata), nil
	case classify.KindTranscript:
		text, _ := input.(string)
		return c.transcript.Encode(text, metadata), nil
	case classify.KindStructuredData:
		return c.structured.Encode(input, metadata)
	default:
		return nil, nil
	}
}
