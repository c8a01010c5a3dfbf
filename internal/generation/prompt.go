package generation

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/resume.txt
	resumePromptTemplate string
	//go:embed prompts/extract.txt
	extractPromptTemplate string
)

const (
	englishDirective = "Write the entire resume in English."
	frenchDirective  = "Write the entire resume in French, including section headers (Expérience professionnelle, Formation, Compétences, Certifications, Langues, Centres d'intérêt). Do not use any English words."
)

// BuildResumePrompt assembles the generation prompt. The user text is always
// appended last.
func BuildResumePrompt(text string, lang Lang) string {
	directive := englishDirective
	if lang == LangFrench {
		directive = frenchDirective
	}
	return strings.NewReplacer(
		"{{LANGUAGE}}", directive,
		"{{EXPERIENCE}}", strings.TrimSpace(text),
	).Replace(resumePromptTemplate)
}

// BuildExtractionPrompt assembles the narrower experience-extraction prompt.
func BuildExtractionPrompt(text string) string {
	return strings.Replace(extractPromptTemplate, "{{EXPERIENCE}}", strings.TrimSpace(text), 1)
}
