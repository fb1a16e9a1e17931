// Package industry maps free-text industry and job-title strings onto a small canonical
// vocabulary of industry tags, and knows which tags are considered related.
//
// All tables in this package are read-only after package initialization and every function
// is safe for concurrent use.
package industry

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// industrySynonyms folds common spellings onto a canonical tag.
// Keys are already normalized (lowercase, single-spaced).
var industrySynonyms = map[string]string{
	// fintech
	"financial services":   "fintech",
	"financial technology": "fintech",
	"finance":              "fintech",
	"fs":                   "fintech",
	"fin tech":             "fintech",
	"fin-tech":             "fintech",

	// banking
	"bank":               "banking",
	"banks":              "banking",
	"retail banking":     "banking",
	"investment banking": "banking",
	"capital markets":    "banking",

	// insurance
	"insurtech":      "insurance",
	"insure tech":    "insurance",
	"reinsurance":    "insurance",
	"life insurance": "insurance",

	// payments
	"payment":            "payments",
	"payment processing": "payments",
	"card payments":      "payments",

	// e-commerce
	"e commerce":         "e-commerce",
	"ecommerce":          "e-commerce",
	"online retail":      "e-commerce",
	"online marketplace": "e-commerce",
	"marketplace":        "e-commerce",

	// retail
	"retailer":       "retail",
	"consumer goods": "retail",
	"cpg":            "retail",

	// healthcare
	"health care":            "healthcare",
	"health":                 "healthcare",
	"healthtech":             "healthcare",
	"health tech":            "healthcare",
	"medical":                "healthcare",
	"hospital & health care": "healthcare",

	// biotech / pharma
	"biotechnology":  "biotech",
	"life sciences":  "biotech",
	"pharma":         "pharmaceuticals",
	"pharmaceutical": "pharmaceuticals",

	// technology
	"tech":                   "technology",
	"information technology": "technology",
	"it":                     "technology",
	"software":               "technology",
	"computer software":      "technology",
	"internet":               "technology",
	"software as a service":  "saas",

	// ai / data
	"artificial intelligence": "ai",
	"machine learning":        "ai",
	"ml":                      "ai",
	"big data":                "data",
	"analytics":               "data",
	"data analytics":          "data",

	// security
	"cyber security":       "cybersecurity",
	"information security": "cybersecurity",
	"infosec":              "cybersecurity",
	"security":             "cybersecurity",

	// media / marketing
	"advertising & marketing": "marketing",
	"digital marketing":       "marketing",
	"ad tech":                 "advertising",
	"adtech":                  "advertising",
	"publishing":              "media",
	"news":                    "media",
	"broadcast media":         "media",
	"video games":             "gaming",
	"games":                   "gaming",
	"computer games":          "gaming",

	// education
	"education technology": "edtech",
	"ed tech":              "edtech",
	"higher education":     "education",
	"e-learning":           "edtech",
	"elearning":            "edtech",

	// logistics / mobility
	"supply chain":        "logistics",
	"shipping":            "logistics",
	"freight":             "logistics",
	"transport":           "transportation",
	"mobility":            "transportation",
	"automobile":          "automotive",
	"automotive industry": "automotive",

	// industry / energy
	"industrial":       "manufacturing",
	"oil & gas":        "energy",
	"oil and gas":      "energy",
	"renewables":       "energy",
	"renewable energy": "energy",
	"utilities":        "energy",
	"clean tech":       "energy",
	"cleantech":        "energy",

	// everything else
	"realestate":            "real estate",
	"proptech":              "real estate",
	"public sector":         "government",
	"gov":                   "government",
	"management consulting": "consulting",
	"professional services": "consulting",
	"telecom":               "telecommunications",
	"telco":                 "telecommunications",
	"hotels":                "hospitality",
	"travel":                "hospitality",
	"restaurants":           "hospitality",
	"law":                   "legal",
	"legal services":        "legal",
	"non-profit":            "nonprofit",
	"non profit":            "nonprofit",
	"ngo":                   "nonprofit",
	"ux":                    "design",
	"ui/ux":                 "design",
	"graphic design":        "design",
}

// relatedIndustries lists, per canonical tag, the tags considered adjacent to it.
// Order matters: the scorer takes the first related tag with positive experience.
// The table is not required to be symmetric.
var relatedIndustries = map[string][]string{
	"fintech":            {"banking", "insurance", "payments"},
	"banking":            {"fintech", "payments", "insurance"},
	"insurance":          {"fintech", "banking"},
	"payments":           {"fintech", "banking", "e-commerce"},
	"e-commerce":         {"retail", "payments", "marketing"},
	"retail":             {"e-commerce", "hospitality"},
	"healthcare":         {"biotech", "pharmaceuticals", "insurance"},
	"biotech":            {"pharmaceuticals", "healthcare"},
	"pharmaceuticals":    {"biotech", "healthcare"},
	"technology":         {"saas", "ai", "data", "cybersecurity"},
	"saas":               {"technology", "data"},
	"ai":                 {"data", "technology"},
	"data":               {"ai", "technology", "saas"},
	"cybersecurity":      {"technology", "saas"},
	"design":             {"marketing", "media", "advertising"},
	"marketing":          {"advertising", "media", "e-commerce"},
	"advertising":        {"marketing", "media"},
	"media":              {"entertainment", "advertising", "marketing"},
	"entertainment":      {"media", "gaming"},
	"gaming":             {"entertainment", "media", "technology"},
	"education":          {"edtech"},
	"edtech":             {"education", "technology", "saas"},
	"logistics":          {"transportation", "e-commerce", "manufacturing"},
	"transportation":     {"logistics", "automotive"},
	"automotive":         {"manufacturing", "transportation"},
	"manufacturing":      {"automotive", "logistics"},
	"energy":             {"manufacturing", "government"},
	"real estate":        {"banking", "hospitality"},
	"government":         {"nonprofit", "consulting"},
	"consulting":         {"government", "technology"},
	"telecommunications": {"technology", "media"},
	"hospitality":        {"retail", "real estate"},
	"legal":              {"consulting", "government"},
	"nonprofit":          {"government", "education"},
}

// NormalizeIndustryText trims, lowercases and collapses internal whitespace to single spaces.
// Hyphens and other punctuation are preserved.
func NormalizeIndustryText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// CanonicalTag normalizes a single industry string and folds it through the synonym table.
// Unknown industries pass through as their own canonical tag.
func CanonicalTag(s string) string {
	normalized := NormalizeIndustryText(s)
	if canonical, ok := industrySynonyms[normalized]; ok {
		return canonical
	}
	return normalized
}

// ParseIndustryTags splits a raw comma-separated industry string into canonical tags.
// Empty pieces are dropped and the result is deduplicated, keeping first-seen order.
// An empty or whitespace-only input returns an empty, non-nil slice.
func ParseIndustryTags(raw string) []string {
	tags := make([]string, 0)
	if strings.TrimSpace(raw) == "" {
		return tags
	}

	seen := make(map[string]struct{})
	for _, piece := range strings.Split(raw, ",") {
		tag := CanonicalTag(piece)
		if tag == "" {
			continue
		}
		if _, exists := seen[tag]; exists {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags
}

// RelatedIndustries returns the ordered list of tags adjacent to tag.
// The returned slice is a copy; callers may modify it.
func RelatedIndustries(tag string) []string {
	related, ok := relatedIndustries[tag]
	if !ok {
		return nil
	}
	out := make([]string, len(related))
	copy(out, related)
	return out
}

// CapitalizeIndustryTag uppercases the first character and lowercases the rest.
func CapitalizeIndustryTag(tag string) string {
	if tag == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(tag)
	return string(unicode.ToUpper(first)) + strings.ToLower(tag[size:])
}
