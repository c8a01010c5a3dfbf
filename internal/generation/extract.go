package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrUnparseable marks model output that could not be read as experiences.
var ErrUnparseable = errors.New("model output unparseable")

// ExtractedExperience is one experience entry recovered from free text.
type ExtractedExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

const experiencesSchema = `{
  "type": "object",
  "required": ["experiences"],
  "properties": {
    "experiences": {
      "type": "array",
      "maxItems": 20,
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": "string", "maxLength": 200},
          "company": {"type": "string", "maxLength": 200},
          "period": {"type": "string", "maxLength": 100},
          "description": {"type": "string", "maxLength": 2000}
        }
      }
    }
  }
}`

var experiencesSchemaLoader = gojsonschema.NewStringLoader(experiencesSchema)

// ParseExperiences reads model output into experience entries. A bare array
// is accepted in place of the {"experiences": [...]} wrapper. Entries with
// no content are dropped.
func ParseExperiences(raw string) ([]ExtractedExperience, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == emptySentinel {
		return nil, ErrUnparseable
	}

	span, ok := extractExperienceJSON(trimmed)
	if !ok || !json.Valid([]byte(span)) {
		return nil, ErrUnparseable
	}
	if strings.HasPrefix(span, "[") {
		span = `{"experiences":` + span + `}`
	}

	result, err := gojsonschema.Validate(experiencesSchemaLoader, gojsonschema.NewStringLoader(span))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrUnparseable, strings.Join(msgs, "; "))
	}

	var payload struct {
		Experiences []ExtractedExperience `json:"experiences"`
	}
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	out := make([]ExtractedExperience, 0, len(payload.Experiences))
	for _, e := range payload.Experiences {
		e.Title = strings.TrimSpace(e.Title)
		e.Company = strings.TrimSpace(e.Company)
		e.Period = strings.TrimSpace(e.Period)
		e.Description = strings.TrimSpace(e.Description)
		if e.Title == "" && e.Company == "" && e.Description == "" {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func extractExperienceJSON(text string) (string, bool) {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if strings.HasPrefix(text, "[") {
		return text, true
	}
	return ExtractJSON(text)
}
