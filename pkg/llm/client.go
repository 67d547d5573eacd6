package llm

import (
	"fmt"
	"strings"
)

const (
	BackendOpenAI    = "openai"
	BackendAnthropic = "anthropic"
	BackendGemini    = "gemini"
)

var languageNames = map[string]string{
	"ar": "Arabic",
	"bn": "Bengali",
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"hi": "Hindi",
	"ja": "Japanese",
	"mr": "Marathi",
	"ta": "Tamil",
	"te": "Telugu",
	"zh": "Chinese",
}

// LanguageName maps an ISO 639-1 code to the name used in prompts. Unknown
// codes are passed through.
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

func translationPrompt(source, target string) string {
	return fmt.Sprintf(`You are a professional news translator. Translate the user's text from %s to %s.

Rules:
1. Keep every fact: names, numbers, dates, percentages
2. Keep company and product names in their original form
3. Keep the sentence order
4. Output the translation only, no notes, no quotes, no other text`, LanguageName(source), LanguageName(target))
}

const summaryPromptFormat = `You are a news editor. Summarize the user's news text in a single neutral paragraph.

Rules:
1. Between %d and %d words
2. Keep facts: names, numbers, dates, percentages
3. Do not add information that is not in the text
4. Output the summary only, no other text`

// cleanCompletion strips the wrapping some models put around plain-text answers.
func cleanCompletion(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx != -1 {
			content = content[idx+1:]
		} else {
			content = strings.TrimPrefix(content, "```")
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	content = strings.TrimSpace(content)

	if len(content) >= 2 && strings.HasPrefix(content, `"`) && strings.HasSuffix(content, `"`) {
		content = strings.TrimSpace(content[1 : len(content)-1])
	}
	return content
}
