package transcript

import (
	"strconv"
	"strings"

	"github.com/clmhq/clm/envelope"
	"github.com/clmhq/clm/lang"
	"github.com/clmhq/clm/model"
	"github.com/clmhq/clm/nlpdoc"
)

// Encoder is the transcript encoder facade: it splits raw text into
// turns, analyzes each one, aggregates the result, and serializes it
// via Assemble.
type Encoder struct {
	Vocab lang.Vocabulary
	Rules lang.Rules
	NLP   nlpdoc.Provider
}

// NewEncoder constructs a transcript Encoder from an immutable
// language pack and NLP provider.
func NewEncoder(v lang.Vocabulary, r lang.Rules, provider nlpdoc.Provider) *Encoder {
	return &Encoder{Vocab: v, Rules: r, NLP: provider}
}

// Encode runs the full transcript pipeline over raw call text and
// returns the envelope the caller serializes or inspects.
func (e *Encoder) Encode(text string, metadata map[string]any) *envelope.CLMOutput {
	turns := ParseTurns(text)
	AnalyzeTurns(turns, e.Vocab, e.Rules, e.NLP)
	analysis := Aggregate(turns, e.Rules, metadata)
	compressed := Assemble(analysis, e.Rules)

	meta := map[string]any{}
	for k, v := range metadata {
		meta[k] = v
	}
	meta["num_turns"] = len(turns)
	meta["num_issues"] = len(analysis.Issues)
	meta["num_actions"] = len(analysis.Actions)
	meta["resolution"] = analysis.Resolution.Type

	out := envelope.New(text, envelope.ComponentTranscript, compressed, meta)
	out.Metadata["compressed_length"] = len(out.Compressed)
	return out
}

// Assemble renders the fixed-order token stream CALL, CUSTOMER, ID,
// CONTACT, ISSUE*, ACTION*, RESOLUTION, SENTIMENT, one space between
// top-level tokens.
func Assemble(a model.TranscriptAnalysis, rules lang.Rules) string {
	tokens := []string{
		callToken(a.Call),
		customerToken(a.Customer, rules),
	}
	if idToken := identifierToken(a.Turns); idToken != "" {
		tokens = append(tokens, idToken)
	}
	if contactToken := contactToken(a.Turns); contactToken != "" {
		tokens = append(tokens, contactToken)
	}
	for _, issue := range a.Issues {
		tokens = append(tokens, issueToken(issue))
	}
	for _, action := range a.Actions {
		tokens = append(tokens, actionToken(action))
	}
	tokens = append(tokens, resolutionToken(a.Resolution))
	if sentiment := sentimentToken(a.SentimentTrajectory); sentiment != "" {
		tokens = append(tokens, sentiment)
	}

	return strings.Join(tokens, " ")
}

func callToken(c model.CallInfo) string {
	var b strings.Builder
	b.WriteString("[CALL:")
	b.WriteString(c.Type)
	if c.Agent != "" {
		b.WriteString(":AGENT=")
		b.WriteString(c.Agent)
	}
	// Two turns approximate one minute of call time.
	minutes := c.DurationTurns / 2
	if minutes < 1 {
		minutes = 1
	}
	b.WriteString(":DURATION=")
	b.WriteString(strconv.Itoa(minutes))
	b.WriteString("m")
	if c.Channel != "" {
		b.WriteString(":CHANNEL=")
		b.WriteString(c.Channel)
	}
	b.WriteString("]")
	return b.String()
}

func customerToken(c model.CustomerProfile, rules lang.Rules) string {
	var b strings.Builder
	b.WriteString("[CUSTOMER")
	if c.Account != "" {
		b.WriteString(":ACCOUNT=")
		b.WriteString(c.Account)
	}
	if c.Tier != "" {
		b.WriteString(":TIER=")
		b.WriteString(c.Tier)
	}
	if c.Tenure != "" {
		b.WriteString(":TENURE=")
		b.WriteString(c.Tenure)
	}
	if addr, ok := c.Attributes["address"]; ok && addr != "" {
		b.WriteString(":ADDRESS=")
		b.WriteString(compressAddress(addr, rules.AddressAbbreviations()))
	}
	if org, ok := c.Attributes["organization"]; ok && org != "" {
		b.WriteString(":ORG=")
		b.WriteString(strings.ReplaceAll(org, " ", "_"))
	}
	if loc, ok := c.Attributes["location"]; ok && loc != "" {
		b.WriteString(":LOCATION=")
		b.WriteString(loc)
	}
	b.WriteString("]")
	return b.String()
}

// compressAddress compresses an address: space→underscore, then a
// suffix-abbreviation lookup on the last word.
func compressAddress(addr string, abbrev map[string]string) string {
	words := strings.Fields(addr)
	if len(words) == 0 {
		return addr
	}
	last := strings.ToLower(strings.TrimRight(words[len(words)-1], ".,"))
	if abbr, ok := abbrev[last]; ok {
		words[len(words)-1] = abbr
	}
	return strings.Join(words, "_")
}

var idBucketOrder = []string{
	bucketAccounts, bucketTracking, bucketClaims, bucketTickets, bucketCases, bucketProducts,
}
var idBucketLabels = map[string]string{
	bucketAccounts: "ACCOUNT", bucketTracking: "TRACKING", bucketClaims: "CLAIM",
	bucketTickets: "TICKET", bucketCases: "CASE", bucketProducts: "PRODUCT",
}

func identifierToken(turns []*model.Turn) string {
	merged := map[string][]string{}
	for _, t := range turns {
		for _, bucket := range idBucketOrder {
			for _, v := range t.Entities[bucket] {
				merged[bucket] = appendUnique(merged[bucket], v)
			}
		}
	}

	var parts []string
	for _, bucket := range idBucketOrder {
		if vs, ok := merged[bucket]; ok && len(vs) > 0 {
			parts = append(parts, idBucketLabels[bucket]+"="+strings.Join(vs, ","))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "[ID:" + strings.Join(parts, ":") + "]"
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func contactToken(turns []*model.Turn) string {
	var email, phone string
	for _, t := range turns {
		if email == "" && len(t.Entities[bucketEmails]) > 0 {
			email = t.Entities[bucketEmails][0]
		}
		if phone == "" && len(t.Entities[bucketPhones]) > 0 {
			phone = t.Entities[bucketPhones][0]
		}
	}
	if email == "" && phone == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("[CONTACT")
	if email != "" {
		b.WriteString(":EMAIL=")
		b.WriteString(email)
	}
	if phone != "" {
		b.WriteString(":PHONE=")
		b.WriteString(phone)
	}
	b.WriteString("]")
	return b.String()
}

func issueToken(issue *model.Issue) string {
	var b strings.Builder
	b.WriteString("[ISSUE:")
	b.WriteString(issue.Type)
	if len(issue.DisputedAmounts) > 0 {
		b.WriteString(":AMOUNTS=")
		b.WriteString(strings.Join(issue.DisputedAmounts, "+"))
	}
	if issue.Severity != "" {
		b.WriteString(":SEVERITY=")
		b.WriteString(string(issue.Severity))
	}
	if issue.Frequency != "" {
		b.WriteString(":FREQ=")
		b.WriteString(issue.Frequency)
	}
	if issue.Duration != "" {
		b.WriteString(":DURATION=")
		b.WriteString(issue.Duration)
	}
	if issue.Pattern != "" {
		b.WriteString(":PATTERN=")
		b.WriteString(issue.Pattern)
	}
	if len(issue.Days) > 0 {
		b.WriteString(":DAYS=")
		b.WriteString(strings.Join(issue.Days, "+"))
	}
	if issue.Impact != "" {
		b.WriteString(":IMPACT=")
		b.WriteString(issue.Impact)
	}
	b.WriteString("]")
	return b.String()
}

func actionToken(action *model.Action) string {
	var b strings.Builder
	b.WriteString("[ACTION:")
	b.WriteString(action.Type)
	if action.Step != "" {
		b.WriteString(":STEP=")
		b.WriteString(action.Step)
	}
	if ref, ok := action.Attributes["reference"]; ok && ref != "" {
		b.WriteString(":REFERENCE=")
		b.WriteString(ref)
	}
	if timeline, ok := action.Attributes["timeline"]; ok && timeline != "" {
		b.WriteString(":TIMELINE=")
		b.WriteString(timeline)
	}
	if action.Amount != "" {
		b.WriteString(":AMOUNT=")
		b.WriteString(action.Amount)
	}
	if action.PaymentMethod != "" {
		b.WriteString(":METHOD=")
		b.WriteString(action.PaymentMethod)
	}
	if action.Result != "" {
		b.WriteString(":RESULT=")
		b.WriteString(string(action.Result))
	}
	b.WriteString("]")
	return b.String()
}

func resolutionToken(r model.Resolution) string {
	var b strings.Builder
	b.WriteString("[RESOLUTION:")
	b.WriteString(string(r.Type))
	if r.Timeline != "" {
		b.WriteString(":TIMELINE=")
		b.WriteString(r.Timeline)
	}
	if r.TicketID != "" {
		b.WriteString(":TICKET=")
		b.WriteString(r.TicketID)
	}
	if r.NextSteps != "" {
		b.WriteString(":NEXT=")
		b.WriteString(strings.ReplaceAll(r.NextSteps, " ", "_"))
	}
	b.WriteString("]")
	return b.String()
}

func sentimentToken(traj model.SentimentTrajectory) string {
	seen := map[string]struct{}{}
	var chain []string
	add := func(label string) {
		if label == "" {
			return
		}
		if _, ok := seen[label]; ok {
			return
		}
		seen[label] = struct{}{}
		chain = append(chain, label)
	}

	add(traj.Start)
	for _, tp := range traj.TurningPoints {
		add(tp.Label)
	}
	add(traj.End)

	if len(chain) == 0 {
		return ""
	}
	return "[SENTIMENT:" + strings.Join(chain, "→") + "]"
}
