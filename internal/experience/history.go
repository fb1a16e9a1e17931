package experience

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/industry-match/internal/schemas"
	"github.com/jonathan/industry-match/internal/types"
	rootschemas "github.com/jonathan/industry-match/schemas"
)

// LoadWorkHistory loads and validates a work-history JSON file
func LoadWorkHistory(path string) (*types.WorkHistory, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return ParseWorkHistory(content)
}

// ParseWorkHistory validates raw JSON against the work-history schema and decodes it.
func ParseWorkHistory(content []byte) (*types.WorkHistory, error) {
	if err := schemas.ValidateDocument(rootschemas.WorkHistory, content); err != nil {
		return nil, &LoadError{
			Message: "work history does not match schema",
			Cause:   err,
		}
	}

	var history types.WorkHistory
	if err := json.Unmarshal(content, &history); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	return &history, nil
}

// LoadIndustryYears loads a candidate's industry years from a JSON file.
// Both a flat {"tag": years} object and a full industry profile document are accepted.
func LoadIndustryYears(path string) (types.IndustryYears, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return ParseIndustryYears(content)
}

// ParseIndustryYears decodes either form accepted by LoadIndustryYears.
func ParseIndustryYears(content []byte) (types.IndustryYears, error) {
	if schemas.ValidateDocument(rootschemas.IndustryProfile, content) == nil {
		var profile types.IndustryProfile
		if err := json.Unmarshal(content, &profile); err != nil {
			return nil, &LoadError{Message: "failed to unmarshal JSON", Cause: err}
		}
		if profile.IndustryYears == nil {
			return types.IndustryYears{}, nil
		}
		return profile.IndustryYears, nil
	}

	if err := schemas.ValidateDocument(rootschemas.IndustryYears, content); err != nil {
		return nil, &LoadError{
			Message: "industry years do not match schema",
			Cause:   err,
		}
	}

	years := make(types.IndustryYears)
	if err := json.Unmarshal(content, &years); err != nil {
		return nil, &LoadError{Message: "failed to unmarshal JSON", Cause: err}
	}
	return years, nil
}
