package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clmhq/clm/nlpdoc/heuristic"
)

func TestExtractEntities_FallbackRegexes(t *testing.T) {
	provider := heuristic.New()
	text := "Reach me at jane@example.com or call 555-123-4567, see https://example.com/ticket"
	doc := provider.Parse(text)

	got := ExtractEntities(doc, text)

	assert.Equal(t, []string{"jane@example.com"}, got[bucketEmails])
	assert.Equal(t, []string{"https://example.com/ticket"}, got[bucketURLs])
	assert.Contains(t, got[bucketPhones], "555-123-4567")
}

func TestExtractEntities_IdentifierBuckets(t *testing.T) {
	provider := heuristic.New()
	text := "My account number: ACC-1234 and my tracking number: TRACK556677."
	doc := provider.Parse(text)

	got := ExtractEntities(doc, text)

	assert.Contains(t, got[bucketAccounts], "ACC-1234")
	assert.Contains(t, got[bucketTracking], "TRACK556677")
}

func TestExtractEntities_DedupesWhilePreservingOrder(t *testing.T) {
	provider := heuristic.New()
	text := "Email jane@example.com again: jane@example.com"
	doc := provider.Parse(text)

	got := ExtractEntities(doc, text)

	assert.Equal(t, []string{"jane@example.com"}, got[bucketEmails])
}

func TestExtractEntities_NoIdentifiersReturnsNoBucket(t *testing.T) {
	provider := heuristic.New()
	text := "Just a plain sentence with nothing extractable."
	doc := provider.Parse(text)

	got := ExtractEntities(doc, text)

	assert.NotContains(t, got, bucketEmails)
	assert.NotContains(t, got, bucketAccounts)
}
