package industry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndustriesForCompany(t *testing.T) {
	assert.Equal(t, []string{"payments", "fintech"}, IndustriesForCompany("  Stripe "))
	assert.Equal(t, []string{"banking"}, IndustriesForCompany("Goldman   Sachs"))
	assert.Equal(t, []string{}, IndustriesForCompany("Unknown Startup"))
	assert.Equal(t, []string{}, IndustriesForCompany(""))
}

func TestIndustriesForCompany_ReturnsCopy(t *testing.T) {
	tags := IndustriesForCompany("stripe")
	tags[0] = "mutated"
	assert.Equal(t, "payments", IndustriesForCompany("stripe")[0])
}

func TestSeedJobTags(t *testing.T) {
	t.Run("explicit industry wins", func(t *testing.T) {
		assert.Equal(t, []string{"healthcare"}, SeedJobTags("Health Care", "Stripe"))
	})

	t.Run("falls back to company", func(t *testing.T) {
		assert.Equal(t, []string{"e-commerce"}, SeedJobTags("  ", "Etsy"))
	})

	t.Run("unknown company stays empty", func(t *testing.T) {
		assert.Empty(t, SeedJobTags("", "Acme Widgets"))
	})
}

func TestCompanyTable_TagsCanonical(t *testing.T) {
	for company, tags := range companyIndustries {
		assert.Equal(t, NormalizeIndustryText(company), company)
		for _, tag := range tags {
			assert.Equal(t, CanonicalTag(tag), tag, "company %q has non-canonical tag %q", company, tag)
		}
	}
}
