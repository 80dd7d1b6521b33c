package transcript

import (
	"regexp"
	"sort"
	"strings"

	"github.com/clmhq/clm/lang"
	"github.com/clmhq/clm/model"
)

var billingIssueTypes = map[string]struct{}{
	"BILLING_DISPUTE": {}, "UNEXPECTED_CHARGE": {}, "REFUND_REQUEST": {}, "OVERCHARGE": {},
}
var technicalIssueTypes = map[string]struct{}{
	"CONNECTIVITY": {}, "TECHNICAL": {},
}

var reMoneyAmount = regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{1,2})?`)
var reUpgradeFromTo = regexp.MustCompile(`(?i)\bfrom\s+([a-z0-9 ]{2,20}?)\s+to\s+([a-z0-9 ]{2,20}?)\b`)
var reReferenceID = regexp.MustCompile(`(?i)\b(?:reference|confirmation|ref)(?: number| code)?\s*[:#]?\s*([A-Z0-9-]{3,20})\b`)
var reGenericID = regexp.MustCompile(`(?i)\b(?:id|ticket|case|order)\s*[:#]?\s*([A-Z0-9-]{3,20})\b`)
var reDashID = regexp.MustCompile(`^[A-Z]{2,5}-\d{3,}$`)
var rePlanKeyword = regexp.MustCompile(`(?i)\b(premium|enterprise|basic)\s+(?:plan|tier)?\b`)
var reNameIntro = regexp.MustCompile(`\b(?i:my name is|i'?m|this is)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
var reThanksName = regexp.MustCompile(`\b(?i:thank(?:s| you)),\s+([A-Z][a-z]+)\b`)
var reEmailAddr = regexp.MustCompile(`(?i)\b([\w.+-]+)@[\w-]+\.[\w.-]+\b`)
var reSalesCue = regexp.MustCompile(`(?i)\b(upgrade|pricing|buy|interested in)\b`)
var reWithinTimeline = regexp.MustCompile(`(?i)\bwithin\s+(\d+)\s*(hour|day)s?\b`)
var reStreetAddress = regexp.MustCompile(`(?i)\b\d{1,6}\s+[A-Za-z0-9.' ]{2,30}\s+(?:street|avenue|lane|drive|boulevard|road|court|place)\b\.?`)

// Aggregate derives CallInfo, CustomerProfile, Issues, Actions,
// Resolution, and SentimentTrajectory from per-turn analysis. Turns
// must already be analyzed (see AnalyzeTurns).
func Aggregate(turns []*model.Turn, rules lang.Rules, metadata map[string]any) model.TranscriptAnalysis {
	analysis := model.TranscriptAnalysis{Turns: turns}
	analysis.Call = aggregateCallInfo(turns, metadata)
	analysis.Customer = aggregateCustomerProfile(turns)
	analysis.Issues = aggregateIssues(turns, rules)
	analysis.Actions = aggregateActions(turns, rules)
	analysis.Resolution = aggregateResolution(turns, rules)
	analysis.SentimentTrajectory = aggregateSentimentTrajectory(turns)
	return analysis
}

func agentTurns(turns []*model.Turn) []*model.Turn {
	var out []*model.Turn
	for _, t := range turns {
		if t.Speaker == model.SpeakerAgent {
			out = append(out, t)
		}
	}
	return out
}

func customerTurns(turns []*model.Turn) []*model.Turn {
	var out []*model.Turn
	for _, t := range turns {
		if t.Speaker == model.SpeakerCustomer {
			out = append(out, t)
		}
	}
	return out
}

func findName(text string) string {
	if m := reNameIntro.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := reThanksName.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func firstPersonEntity(turns []*model.Turn, limit int) string {
	for i, t := range turns {
		if i >= limit {
			break
		}
		for _, p := range t.Entities[bucketPersons] {
			return p
		}
	}
	return ""
}

func aggregateCallInfo(turns []*model.Turn, metadata map[string]any) model.CallInfo {
	info := model.CallInfo{DurationTurns: len(turns)}

	info.Type = "SUPPORT"
	for _, t := range turns {
		if reSalesCue.MatchString(t.Text) {
			info.Type = "SALES"
			break
		}
	}

	info.Channel = "VOICE"
	if metadata != nil {
		if ch, ok := metadata["channel"].(string); ok && ch != "" {
			info.Channel = ch
		}
	}

	if metadata != nil {
		if agent, ok := metadata["agent"].(string); ok && agent != "" {
			info.Agent = agent
		}
	}
	if info.Agent == "" {
		agents := agentTurns(turns)
		if name := firstPersonEntity(agents, 3); name != "" {
			info.Agent = name
		} else {
			for i, t := range agents {
				if i >= 3 {
					break
				}
				if name := findName(t.Text); name != "" {
					info.Agent = name
					break
				}
			}
		}
	}

	return info
}

func aggregateCustomerProfile(turns []*model.Turn) model.CustomerProfile {
	profile := model.CustomerProfile{Attributes: map[string]string{}}
	agents := agentTurns(turns)

	if name := firstPersonEntity(agents, 3); name != "" {
		profile.Attributes["name"] = name
	} else {
		for i, t := range agents {
			if i >= 3 {
				break
			}
			if name := findName(t.Text); name != "" {
				profile.Attributes["name"] = name
				break
			}
		}
	}
	if profile.Attributes["name"] == "" {
		for _, t := range turns {
			if m := reThanksName.FindStringSubmatch(t.Text); m != nil {
				profile.Attributes["name"] = m[1]
				break
			}
		}
	}
	if profile.Attributes["name"] == "" {
		for _, t := range turns {
			for _, e := range t.Entities[bucketEmails] {
				if m := reEmailAddr.FindStringSubmatch(e); m != nil {
					profile.Attributes["name"] = strings.Split(m[1], ".")[0]
					break
				}
			}
			if profile.Attributes["name"] != "" {
				break
			}
		}
	}

	for _, t := range turns {
		if len(t.Entities[bucketAccounts]) > 0 {
			profile.Account = t.Entities[bucketAccounts][0]
			break
		}
	}

	profile.Tier = "STANDARD"
	for _, t := range turns {
		if m := rePlanKeyword.FindStringSubmatch(t.Text); m != nil {
			profile.Tier = strings.ToUpper(m[1])
			break
		}
	}

	for _, t := range turns {
		if len(t.Entities[bucketLocations]) > 0 && profile.Attributes["location"] == "" {
			profile.Attributes["location"] = t.Entities[bucketLocations][0]
		}
		if len(t.Entities[bucketOrganizations]) > 0 && profile.Attributes["organization"] == "" {
			profile.Attributes["organization"] = t.Entities[bucketOrganizations][0]
		}
		if len(t.Entities[bucketEmails]) > 0 && profile.Attributes["email"] == "" {
			profile.Attributes["email"] = t.Entities[bucketEmails][0]
		}
		if profile.Attributes["address"] == "" {
			if m := reStreetAddress.FindString(t.Text); m != "" {
				profile.Attributes["address"] = strings.TrimRight(m, ".")
			}
		}
	}

	return profile
}

func aggregateIssues(turns []*model.Turn, rules lang.Rules) []*model.Issue {
	customers := customerTurns(turns)
	if len(customers) == 0 {
		return nil
	}
	var allText strings.Builder
	for _, t := range customers {
		allText.WriteString(strings.ToLower(t.Text))
		allText.WriteString(" ")
	}
	joined := allText.String()

	issueType := firstIssueTypeMatch(joined, rules.IssueTypeKeywords())
	if issueType == "" {
		return nil
	}

	issue := &model.Issue{Type: issueType, Severity: model.SeverityLow, Attributes: map[string]string{}}
	issue.Severity = firstSeverityMatch(joined, rules.SeverityKeywords())

	if _, billing := billingIssueTypes[issueType]; billing {
		issue.DisputedAmounts = disputedAmounts(customers)
		issue.Cause, issue.PlanChange = billingCause(agentTurns(turns), rules.BillingCauseKeywords())
	}
	if _, technical := technicalIssueTypes[issueType]; technical {
		issue.Cause = firstMatch(joined, rules.TechnicalIssueMap())
	}

	temporal := ExtractTemporal(joined)
	issue.Days = temporal.Days
	issue.Frequency = temporal.Frequency
	issue.Duration = temporal.Duration
	issue.Pattern = temporal.Pattern

	return []*model.Issue{issue}
}

// firstIssueTypeMatch scans issue types' keyword lists longest-keyword
// first, picking the first type with any hit.
func firstIssueTypeMatch(text string, keywords map[string][]string) string {
	type hit struct {
		issueType string
		keyword   string
	}
	var hits []hit
	for issueType, kws := range keywords {
		for _, kw := range kws {
			if strings.Contains(text, kw) {
				hits = append(hits, hit{issueType, kw})
			}
		}
	}
	if len(hits) == 0 {
		return ""
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if len(hits[i].keyword) != len(hits[j].keyword) {
			return len(hits[i].keyword) > len(hits[j].keyword)
		}
		return hits[i].issueType < hits[j].issueType
	})
	return hits[0].issueType
}

func firstSeverityMatch(text string, keywords map[string][]string) model.Severity {
	order := []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"}
	for _, sev := range order {
		for _, kw := range keywords[sev] {
			if strings.Contains(text, kw) {
				return model.Severity(sev)
			}
		}
	}
	return model.SeverityLow
}

func firstMatch(text string, keywords map[string][]string) string {
	keys := make([]string, 0, len(keywords))
	for k := range keywords {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, label := range keys {
		for _, kw := range keywords[label] {
			if strings.Contains(text, kw) {
				return label
			}
		}
	}
	return ""
}

func disputedAmounts(customers []*model.Turn) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, t := range customers {
		tl := strings.ToLower(t.Text)
		if !strings.Contains(tl, "charge") && !strings.Contains(tl, "bill") &&
			!strings.Contains(tl, "statement") && !strings.Contains(tl, "payment") {
			continue
		}
		for _, amt := range reMoneyAmount.FindAllString(t.Text, -1) {
			if _, ok := seen[amt]; ok {
				continue
			}
			seen[amt] = struct{}{}
			out = append(out, amt)
		}
	}
	return out
}

func billingCause(agents []*model.Turn, keywords map[string][]string) (cause, planChange string) {
	for _, t := range agents {
		tl := strings.ToLower(t.Text)
		if cause == "" {
			cause = firstMatch(tl, keywords)
		}
		if planChange == "" {
			if m := reUpgradeFromTo.FindStringSubmatch(t.Text); m != nil {
				planChange = strings.ToUpper(strings.TrimSpace(m[1])) + "→" + strings.ToUpper(strings.TrimSpace(m[2]))
			}
		}
	}
	return cause, planChange
}

func aggregateActions(turns []*model.Turn, rules lang.Rules) []*model.Action {
	var order []string
	byType := map[string]*model.Action{}

	explicitOnly := rules.ExplicitOnlyActions()
	confirmPhrases := rules.IssueConfirmationPhrases()
	troubleshoot := rules.TroubleshootingPhrases()
	actionTokens := rules.ActionTokens()

	for _, t := range agentTurns(turns) {
		tl := strings.ToLower(t.Text)

		for _, phrase := range longestFirst(confirmPhrases) {
			if strings.Contains(tl, phrase) {
				recordAction(&order, byType, "CONFIRMATION", "", t, rules)
				break
			}
		}

		for _, label := range sortedActionKeys(troubleshoot) {
			for _, phrase := range troubleshoot[label] {
				if strings.Contains(tl, phrase) {
					recordAction(&order, byType, "TROUBLESHOOT", label, t, rules)
					break
				}
			}
		}

		for _, label := range sortedActionKeys(actionTokens) {
			_, needsExact := explicitOnly[label]
			matched := false
			for _, phrase := range actionTokens[label] {
				if needsExact {
					if tl == phrase || strings.Contains(tl, " "+phrase+" ") || strings.HasPrefix(tl, phrase+" ") || strings.HasSuffix(tl, " "+phrase) {
						matched = true
					}
				} else if strings.Contains(tl, phrase) {
					matched = true
				}
				if matched {
					break
				}
			}
			if matched {
				recordAction(&order, byType, label, "", t, rules)
			}
		}
	}

	actions := make([]*model.Action, 0, len(order))
	for _, key := range order {
		actions = append(actions, byType[key])
	}
	return actions
}

func longestFirst(phrases []string) []string {
	out := make([]string, len(phrases))
	copy(out, phrases)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

func sortedActionKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func recordAction(order *[]string, byType map[string]*model.Action, actionType, step string, turn *model.Turn, rules lang.Rules) {
	key := actionType + ":" + step
	action, exists := byType[key]
	if !exists {
		action = &model.Action{Type: actionType, Step: step, Result: model.ActionPending, Attributes: map[string]string{}}
		byType[key] = action
		*order = append(*order, key)
	}

	if action.Attributes["reference"] == "" {
		if m := reReferenceID.FindStringSubmatch(turn.Text); m != nil {
			action.Attributes["reference"] = m[1]
		} else if m := reGenericID.FindStringSubmatch(turn.Text); m != nil {
			action.Attributes["reference"] = m[1]
		} else {
			for _, w := range strings.Fields(turn.Text) {
				if reDashID.MatchString(w) {
					action.Attributes["reference"] = w
					break
				}
			}
		}
	}

	if action.Amount == "" {
		if len(turn.Entities[bucketMoney]) > 0 {
			action.Amount = turn.Entities[bucketMoney][0]
		} else if m := reMoneyAmount.FindString(turn.Text); m != "" {
			action.Amount = m
		}
	}

	if action.PaymentMethod == "" {
		tl := strings.ToLower(turn.Text)
		for _, label := range sortedActionKeys(rules.PaymentMethodKeywords()) {
			for _, kw := range rules.PaymentMethodKeywords()[label] {
				if strings.Contains(tl, kw) {
					action.PaymentMethod = label
					break
				}
			}
			if action.PaymentMethod != "" {
				break
			}
		}
	}

	if strings.Contains(strings.ToLower(turn.Text), "processed") || strings.Contains(strings.ToLower(turn.Text), "completed") || strings.Contains(strings.ToLower(turn.Text), "done") {
		action.Result = model.ActionCompleted
	}
}

func aggregateResolution(turns []*model.Turn, rules lang.Rules) model.Resolution {
	agents := agentTurns(turns)
	start := 0
	if len(agents) > 5 {
		start = len(agents) - 5
	}
	window := agents[start:]

	resolution := model.Resolution{Type: model.ResolutionUnknown}
	for i := len(window) - 1; i >= 0; i-- {
		t := window[i]
		tl := strings.ToLower(t.Text)
		label := firstMatch(tl, rules.ResolutionKeywords())
		if label == "" {
			continue
		}
		switch label {
		case "RESOLVED":
			resolution.Type = model.ResolutionResolved
		case "ESCALATED":
			resolution.Type = model.ResolutionEscalated
		case "PENDING_REPLACEMENT":
			resolution.Type = model.ResolutionPending
			resolution.NextSteps = "REPLACEMENT"
		case "PENDING":
			resolution.Type = model.ResolutionPending
		}
		resolution.Timeline = resolutionTimeline(t.Text)
		break
	}
	return resolution
}

func resolutionTimeline(text string) string {
	if m := reWithinTimeline.FindStringSubmatch(text); m != nil {
		unit := map[string]string{"hour": "h", "day": "d"}[m[2]]
		return m[1] + unit
	}
	temporal := ExtractTemporal(text)
	return temporal.Duration
}

func aggregateSentimentTrajectory(turns []*model.Turn) model.SentimentTrajectory {
	customers := customerTurns(turns)
	traj := model.SentimentTrajectory{Start: "NEUTRAL", End: "NEUTRAL"}
	if len(customers) == 0 {
		return traj
	}

	var nonNeutral []struct {
		idx   int
		label string
	}
	for i, t := range customers {
		if t.Sentiment != nil && t.Sentiment.Label != "NEUTRAL" {
			nonNeutral = append(nonNeutral, struct {
				idx   int
				label string
			}{i, t.Sentiment.Label})
		}
	}
	if len(nonNeutral) > 0 {
		traj.Start = nonNeutral[0].label
		traj.End = nonNeutral[len(nonNeutral)-1].label
	}

	var points []model.TurningPoint
	last := ""
	for i, t := range customers {
		label := "NEUTRAL"
		if t.Sentiment != nil {
			label = t.Sentiment.Label
		}
		if label != last && label != "NEUTRAL" {
			points = append(points, model.TurningPoint{TurnIndex: i, Label: label})
		}
		if label != "NEUTRAL" {
			last = label
		}
	}
	traj.TurningPoints = points
	return traj
}
