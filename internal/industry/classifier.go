package industry

import "strings"

// positionGroup ties a set of title keywords to the industries they imply.
type positionGroup struct {
	keywords   []string
	industries []string
}

// positionGroups is scanned in order. Keywords are normalized (lowercase, single-spaced)
// and matched as substrings of the normalized title, so "Senior Backend Engineer"
// matches "backend". Keep keywords long enough not to hit unrelated words.
var positionGroups = []positionGroup{
	{
		keywords:   []string{"ui/ux designer", "ux designer", "ui designer", "product designer", "graphic designer", "visual designer", "interaction designer", "art director"},
		industries: []string{"design"},
	},
	{
		keywords:   []string{"software engineer", "software developer", "backend", "back-end", "frontend", "front-end", "full stack", "fullstack", "devops", "site reliability", "platform engineer", "mobile developer", "ios developer", "android developer", "web developer"},
		industries: []string{"technology"},
	},
	{
		keywords:   []string{"data scientist", "data analyst", "data engineer", "analytics engineer", "business intelligence"},
		industries: []string{"data"},
	},
	{
		keywords:   []string{"machine learning", "mlops engineer", "ai engineer", "ai researcher", "deep learning", "nlp engineer"},
		industries: []string{"ai", "technology"},
	},
	{
		keywords:   []string{"security engineer", "security analyst", "penetration tester", "soc analyst", "cybersecurity"},
		industries: []string{"cybersecurity"},
	},
	{
		keywords:   []string{"marketing", "seo specialist", "growth hacker", "content strategist", "social media manager", "brand manager"},
		industries: []string{"marketing"},
	},
	{
		keywords:   []string{"copywriter", "media buyer", "media planner", "creative director"},
		industries: []string{"advertising"},
	},
	{
		keywords:   []string{"journalist", "copy editor", "news editor", "video editor", "managing editor", "editor in chief", "editor-in-chief", "reporter", "video producer", "podcast"},
		industries: []string{"media"},
	},
	{
		keywords:   []string{"game designer", "game developer", "level designer", "gameplay"},
		industries: []string{"gaming"},
	},
	{
		keywords:   []string{"investment banker", "loan officer", "bank teller", "relationship banker", "credit analyst", "branch manager"},
		industries: []string{"banking"},
	},
	{
		keywords:   []string{"financial analyst", "quantitative analyst", "quant developer", "fintech"},
		industries: []string{"fintech"},
	},
	{
		keywords:   []string{"payments engineer", "payment operations", "payments product"},
		industries: []string{"payments", "fintech"},
	},
	{
		keywords:   []string{"actuary", "underwriter", "claims adjuster", "insurance agent", "insurance broker"},
		industries: []string{"insurance"},
	},
	{
		keywords:   []string{"nurse", "physician", "pharmacist", "medical assistant", "clinical", "therapist", "surgeon", "paramedic", "dentist"},
		industries: []string{"healthcare"},
	},
	{
		keywords:   []string{"research scientist", "lab technician", "biologist", "bioinformatician"},
		industries: []string{"biotech"},
	},
	{
		keywords:   []string{"teacher", "professor", "lecturer", "tutor", "instructor", "curriculum"},
		industries: []string{"education"},
	},
	{
		keywords:   []string{"store manager", "cashier", "merchandiser", "sales associate", "retail"},
		industries: []string{"retail"},
	},
	{
		keywords:   []string{"ecommerce", "e-commerce", "marketplace manager", "shopify"},
		industries: []string{"e-commerce"},
	},
	{
		keywords:   []string{"logistics", "supply chain", "warehouse associate", "warehouse manager", "dispatcher", "fleet manager", "procurement"},
		industries: []string{"logistics"},
	},
	{
		keywords:   []string{"truck driver", "delivery driver", "bus driver", "airline pilot", "commercial pilot", "transit operator", "train conductor"},
		industries: []string{"transportation"},
	},
	{
		keywords:   []string{"mechanical engineer", "manufacturing", "production supervisor", "machinist", "quality inspector", "plant manager"},
		industries: []string{"manufacturing"},
	},
	{
		keywords:   []string{"automotive", "vehicle engineer", "auto mechanic"},
		industries: []string{"automotive"},
	},
	{
		keywords:   []string{"petroleum engineer", "solar", "energy analyst", "wind turbine", "electrician"},
		industries: []string{"energy"},
	},
	{
		keywords:   []string{"real estate", "realtor", "property manager", "leasing agent"},
		industries: []string{"real estate"},
	},
	{
		keywords:   []string{"management consultant", "consultant", "strategy analyst"},
		industries: []string{"consulting"},
	},
	{
		keywords:   []string{"attorney", "lawyer", "paralegal", "legal counsel", "solicitor"},
		industries: []string{"legal"},
	},
	{
		keywords:   []string{"policy analyst", "civil servant", "public administrator"},
		industries: []string{"government"},
	},
	{
		keywords:   []string{"network engineer", "telecom", "rf engineer"},
		industries: []string{"telecommunications"},
	},
	{
		keywords:   []string{"hotel", "chef", "bartender", "concierge", "front desk", "waiter", "waitress"},
		industries: []string{"hospitality"},
	},
	{
		keywords:   []string{"fundraiser", "program coordinator", "grant writer", "volunteer coordinator"},
		industries: []string{"nonprofit"},
	},
}

// IndustriesForPosition infers canonical industry tags from a job title.
// Every group with a keyword contained in the normalized title contributes all of its
// industries. An empty title, or one matching no group, yields an empty slice; the
// classifier never falls back to a default industry.
func IndustriesForPosition(title string) []string {
	industries := make([]string, 0)

	normalized := NormalizeIndustryText(title)
	if normalized == "" {
		return industries
	}

	seen := make(map[string]struct{})
	for _, group := range positionGroups {
		if !containsAny(normalized, group.keywords) {
			continue
		}
		for _, tag := range group.industries {
			if _, exists := seen[tag]; exists {
				continue
			}
			seen[tag] = struct{}{}
			industries = append(industries, tag)
		}
	}

	return industries
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
