package generation

import "strings"

// Lang selects the output language of a generated resume.
type Lang string

const (
	LangEnglish Lang = "en"
	LangFrench  Lang = "fr"
)

// ParseLang maps a request value to a supported language. Anything other
// than French is English.
func ParseLang(raw string) Lang {
	if strings.EqualFold(strings.TrimSpace(raw), string(LangFrench)) {
		return LangFrench
	}
	return LangEnglish
}

// Resume is the document shape the model is asked to emit. Model output is
// returned verbatim, so consumers must treat every field as optional.
type Resume struct {
	Name           string          `json:"name"`
	Title          string          `json:"title"`
	Summary        string          `json:"summary"`
	Contact        Contact         `json:"contact"`
	Experience     []ExperienceRow `json:"experience"`
	Education      []EducationRow  `json:"education"`
	Skills         []string        `json:"skills"`
	Certifications []string        `json:"certifications"`
	Languages      []string        `json:"languages"`
	Hobbies        []string        `json:"hobbies"`
	Message        string          `json:"message,omitempty"`
}

type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
}

type ExperienceRow struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Period   string   `json:"period"`
	Location string   `json:"location,omitempty"`
	Bullets  []string `json:"bullets"`
}

type EducationRow struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Period      string `json:"period"`
}

// Result is the generate-resume response body. Resume holds either a
// fallback Resume or the decoded model object.
type Result struct {
	Resume   any  `json:"resume"`
	Fallback bool `json:"fallback"`
}
