package industry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIndustryTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty string", "", []string{}},
		{"whitespace only", "   \t ", []string{}},
		{"only commas", " , ,, ", []string{}},
		{"single tag", "Fintech", []string{"fintech"}},
		{"synonyms fold to fintech once", "Financial Services, FinTech, FIN TECH", []string{"fintech"}},
		{"finance and fs", "finance,fs", []string{"fintech"}},
		{"ecommerce spellings", "E Commerce, ecommerce, e-commerce", []string{"e-commerce"}},
		{"collapses internal whitespace", "  Real    Estate  ", []string{"real estate"}},
		{"unknown industry passes through", "Space Exploration", []string{"space exploration"}},
		{"keeps first-seen order", "Healthcare, Banking, health care", []string{"healthcare", "banking"}},
		{"hyphen retained", "Non-Profit, Ad-Tech", []string{"nonprofit", "ad-tech"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseIndustryTags(tt.input)
			assert.NotNil(t, result)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseIndustryTags_NoDuplicates(t *testing.T) {
	tags := ParseIndustryTags("fintech, Finance, banking, BANKING, bank, payments, payment")

	seen := make(map[string]bool)
	for _, tag := range tags {
		assert.False(t, seen[tag], "duplicate tag %q", tag)
		seen[tag] = true
	}
	assert.ElementsMatch(t, []string{"fintech", "banking", "payments"}, tags)
}

func TestCanonicalTag(t *testing.T) {
	assert.Equal(t, "fintech", CanonicalTag("  Financial   Services "))
	assert.Equal(t, "e-commerce", CanonicalTag("ECOMMERCE"))
	assert.Equal(t, "widgets", CanonicalTag("Widgets"))
	assert.Equal(t, "", CanonicalTag("   "))
}

func TestNormalizeIndustryText(t *testing.T) {
	assert.Equal(t, "health care", NormalizeIndustryText("\tHealth \n  Care "))
	assert.Equal(t, "e-commerce", NormalizeIndustryText("E-Commerce"))
	assert.Equal(t, "", NormalizeIndustryText(""))
}

func TestRelatedIndustries(t *testing.T) {
	assert.Equal(t, []string{"banking", "insurance", "payments"}, RelatedIndustries("fintech"))
	assert.Equal(t, "fintech", RelatedIndustries("banking")[0])
	assert.Nil(t, RelatedIndustries("space exploration"))
	assert.Nil(t, RelatedIndustries(""))
}

func TestRelatedIndustries_ReturnsCopy(t *testing.T) {
	related := RelatedIndustries("fintech")
	related[0] = "mutated"

	assert.Equal(t, "banking", RelatedIndustries("fintech")[0])
}

func TestRelatedIndustries_TableIsCanonical(t *testing.T) {
	for tag, related := range relatedIndustries {
		assert.Equal(t, CanonicalTag(tag), tag, "key %q is not canonical", tag)
		assert.NotContains(t, related, tag, "tag %q lists itself as related", tag)
		for _, r := range related {
			assert.Equal(t, CanonicalTag(r), r, "related tag %q of %q is not canonical", r, tag)
		}
	}
}

func TestSynonymTable_TargetsAreCanonical(t *testing.T) {
	for variant, canonical := range industrySynonyms {
		assert.Equal(t, NormalizeIndustryText(variant), variant, "synonym key %q is not normalized", variant)
		_, chained := industrySynonyms[canonical]
		assert.False(t, chained, "synonym %q maps to %q which is itself a synonym", variant, canonical)
	}
}

func TestCapitalizeIndustryTag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"fintech", "Fintech"},
		{"FINTECH", "Fintech"},
		{"e-commerce", "E-commerce"},
		{"real estate", "Real estate"},
		{"a", "A"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CapitalizeIndustryTag(tt.input))
		})
	}
}
