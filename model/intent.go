package model

// REQ is the closed set of canonical intent actions.
type REQ string

const (
	REQAnalyze    REQ = "ANALYZE"
	REQExtract    REQ = "EXTRACT"
	REQGenerate   REQ = "GENERATE"
	REQPredict    REQ = "PREDICT"
	REQValidate   REQ = "VALIDATE"
	REQTransform  REQ = "TRANSFORM"
	REQFormat     REQ = "FORMAT"
	REQRank       REQ = "RANK"
	REQDebug      REQ = "DEBUG"
	REQSearch     REQ = "SEARCH"
	REQExecute    REQ = "EXECUTE"
	REQSummarize  REQ = "SUMMARIZE"
	REQClassify   REQ = "CLASSIFY"
	REQCompare    REQ = "COMPARE"
	REQOptimize   REQ = "OPTIMIZE"
	REQExplain    REQ = "EXPLAIN"
)

// Intent is the resolved primary REQ action plus the signal that
// triggered it and any verbs the vocabulary could not account for.
type Intent struct {
	Token          REQ
	Confidence     float64
	TriggerWord    string
	Modifier       string
	Spec           string
	UnmatchedVerbs []string
}

// BuildToken renders `[REQ:<token>]`, `[REQ:<token>:<modifier>]`, or
// (when a SPEC was resolved) `[REQ:<token>:<modifier>:SPEC=<spec>]`.
// EXTRACT-with-fields uses a distinct shape built by the tokenizer
// directly, so it is not handled here.
func (i *Intent) BuildToken() string {
	out := "[REQ:" + string(i.Token)
	if i.Modifier != "" {
		out += ":" + i.Modifier
	}
	if i.Spec != "" {
		out += ":SPEC=" + i.Spec
	}
	return out + "]"
}
