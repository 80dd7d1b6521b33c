package transcript

import (
	"regexp"
	"strings"

	"github.com/clmhq/clm/nlpdoc"
)

// entity bucket keys, normalized to plural/lowercase names.
const (
	bucketPersons       = "persons"
	bucketOrganizations = "organizations"
	bucketLocations     = "locations"
	bucketDates         = "dates"
	bucketTimes         = "times"
	bucketMoney         = "money"
	bucketAccounts      = "account_numbers"
	bucketTracking      = "tracking_numbers"
	bucketClaims        = "claim_numbers"
	bucketTickets       = "ticket_numbers"
	bucketCases         = "case_numbers"
	bucketProducts      = "product_models"
	bucketEmails        = "emails"
	bucketPhones        = "phone_numbers"
	bucketURLs          = "urls"
)

var (
	reEmailFallback = regexp.MustCompile(`(?i)\b[\w.+-]+@[\w-]+\.[\w.-]+\b`)
	rePhoneFallback = regexp.MustCompile(`\b(?:\+?1[-. ]?)?\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}\b`)
	reURLFallback   = regexp.MustCompile(`(?i)\bhttps?://[^\s]+`)

	reAccountNumber  = regexp.MustCompile(`(?i)\baccount(?:\s+number|\s+#|\s*#|\s*no\.?)?\s*[:#]?\s*([A-Z0-9-]{4,20})\b`)
	reTrackingNumber = regexp.MustCompile(`(?i)\btracking(?:\s+number|\s*#)?\s*[:#]?\s*([A-Z0-9]{6,30})\b`)
	reClaimNumber    = regexp.MustCompile(`(?i)\bclaim(?:\s+number|\s*#)?\s*[:#]?\s*([A-Z0-9-]{4,20})\b`)
	reTicketNumber   = regexp.MustCompile(`(?i)\bticket(?:\s+number|\s*#)?\s*[:#]?\s*([A-Z0-9-]{4,20})\b`)
	reCaseNumber     = regexp.MustCompile(`(?i)\bcase(?:\s+number|\s*#)?\s*[:#]?\s*([A-Z0-9-]{4,20})\b`)
	reProductModel   = regexp.MustCompile(`\b([A-Z]{2,5}-?\d{2,5}[A-Z]?)\b`)
)

// ExtractEntities normalizes a Doc's named entities into a bucketed
// map, falling back to regex for EMAIL, PHONE, and URL when the NLP
// provider's NER (the closed PERSON/ORG/GPE/... label set) doesn't
// carry identifier-shaped spans. Each bucket's values keep their
// discovery order, deduplicated.
func ExtractEntities(doc nlpdoc.Doc, text string) map[string][]string {
	buckets := map[string][]string{}
	seen := map[string]struct{}{}
	add := func(bucket, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		key := bucket + "\x00" + value
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		buckets[bucket] = append(buckets[bucket], value)
	}

	for _, e := range doc.Entities() {
		switch e.Label {
		case nlpdoc.EntityPerson:
			add(bucketPersons, e.Text)
		case nlpdoc.EntityOrg:
			add(bucketOrganizations, e.Text)
		case nlpdoc.EntityGPE, nlpdoc.EntityLoc:
			add(bucketLocations, e.Text)
		case nlpdoc.EntityDate:
			add(bucketDates, e.Text)
		case nlpdoc.EntityTime:
			add(bucketTimes, e.Text)
		case nlpdoc.EntityMoney:
			add(bucketMoney, e.Text)
		case nlpdoc.EntityURL:
			add(bucketURLs, e.Text)
		}
	}

	for _, m := range reEmailFallback.FindAllString(text, -1) {
		add(bucketEmails, m)
	}
	for _, m := range reURLFallback.FindAllString(text, -1) {
		add(bucketURLs, m)
	}
	for _, m := range rePhoneFallback.FindAllString(text, -1) {
		add(bucketPhones, m)
	}
	for _, m := range reAccountNumber.FindAllStringSubmatch(text, -1) {
		add(bucketAccounts, m[1])
	}
	for _, m := range reTrackingNumber.FindAllStringSubmatch(text, -1) {
		add(bucketTracking, m[1])
	}
	for _, m := range reClaimNumber.FindAllStringSubmatch(text, -1) {
		add(bucketClaims, m[1])
	}
	for _, m := range reTicketNumber.FindAllStringSubmatch(text, -1) {
		add(bucketTickets, m[1])
	}
	for _, m := range reCaseNumber.FindAllStringSubmatch(text, -1) {
		add(bucketCases, m[1])
	}
	for _, m := range reProductModel.FindAllString(text, -1) {
		add(bucketProducts, m)
	}

	return buckets
}
