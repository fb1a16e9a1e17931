// Package schemas holds the JSON Schema documents for the files and payloads the
// industry-match tools read and write.
package schemas

import "embed"

// Schema file names.
const (
	WorkHistory     = "work_history.schema.json"
	IndustryYears   = "industry_years.schema.json"
	IndustryProfile = "industry_profile.schema.json"
	MatchResult     = "match_result.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw content of a named schema.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}
