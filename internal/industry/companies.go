package industry

// companyIndustries is a static company-name lookup. Keys are normalized names.
// It is auxiliary data: the scorer never reads it, callers may use it to seed
// tags for postings that omit an industry.
var companyIndustries = map[string][]string{
	"stripe":             {"payments", "fintech"},
	"paypal":             {"payments", "fintech"},
	"square":             {"payments", "fintech"},
	"block":              {"payments", "fintech"},
	"adyen":              {"payments"},
	"revolut":            {"fintech", "banking"},
	"monzo":              {"fintech", "banking"},
	"chime":              {"fintech", "banking"},
	"robinhood":          {"fintech"},
	"plaid":              {"fintech"},
	"jpmorgan chase":     {"banking"},
	"goldman sachs":      {"banking"},
	"wells fargo":        {"banking"},
	"bank of america":    {"banking"},
	"lemonade":           {"insurance"},
	"allstate":           {"insurance"},
	"amazon":             {"e-commerce", "technology"},
	"shopify":            {"e-commerce", "saas"},
	"etsy":               {"e-commerce"},
	"ebay":               {"e-commerce"},
	"walmart":            {"retail"},
	"target":             {"retail"},
	"google":             {"technology"},
	"microsoft":          {"technology"},
	"apple":              {"technology"},
	"meta":               {"technology", "advertising"},
	"salesforce":         {"saas"},
	"atlassian":          {"saas"},
	"openai":             {"ai"},
	"anthropic":          {"ai"},
	"crowdstrike":        {"cybersecurity"},
	"palo alto networks": {"cybersecurity"},
	"figma":              {"design", "saas"},
	"canva":              {"design", "saas"},
	"netflix":            {"entertainment", "media"},
	"spotify":            {"media", "entertainment"},
	"electronic arts":    {"gaming"},
	"epic games":         {"gaming"},
	"coursera":           {"edtech"},
	"duolingo":           {"edtech"},
	"pfizer":             {"pharmaceuticals"},
	"moderna":            {"biotech"},
	"kaiser permanente":  {"healthcare"},
	"flexport":           {"logistics"},
	"fedex":              {"logistics"},
	"uber":               {"transportation"},
	"tesla":              {"automotive", "energy"},
	"general motors":     {"automotive"},
	"mckinsey":           {"consulting"},
	"deloitte":           {"consulting"},
	"verizon":            {"telecommunications"},
	"airbnb":             {"hospitality", "technology"},
	"marriott":           {"hospitality"},
	"zillow":             {"real estate"},
}

// IndustriesForCompany returns the canonical tags known for a company, or an empty slice.
func IndustriesForCompany(company string) []string {
	tags, ok := companyIndustries[NormalizeIndustryText(company)]
	if !ok {
		return []string{}
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// SeedJobTags parses a posting's raw industry string. Only when that yields no tags does
// it fall back to the company lookup; an unknown company still yields an empty slice.
func SeedJobTags(rawIndustry, company string) []string {
	tags := ParseIndustryTags(rawIndustry)
	if len(tags) > 0 {
		return tags
	}
	return IndustriesForCompany(company)
}
