package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"unicode/utf8"
)

const (
	minPromptLen = 10
	maxPromptLen = 1000
)

// InvalidPromptError carrega a mensagem devolvida ao cliente (400)
type InvalidPromptError struct {
	Msg       string
	Injection bool
}

func (e *InvalidPromptError) Error() string { return e.Msg }

var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore.{0,20}(previous|above|prior).{0,20}instruct`),
	regexp.MustCompile(`(?i)disregard.{0,20}(previous|above|system)`),
	regexp.MustCompile(`(?i)override.{0,20}(system|instructions)`),
	regexp.MustCompile(`(?i)forget.{0,20}(previous|above|all)`),
	regexp.MustCompile(`(?i)new.{0,20}(instruction|role|task)`),
}

// ValidatePrompt aplica, nesta ordem: string não vazia, tamanho e padrões de injeção
func ValidatePrompt(raw json.RawMessage) (string, error) {
	var prompt string
	if len(raw) == 0 || json.Unmarshal(raw, &prompt) != nil || prompt == "" {
		return "", &InvalidPromptError{Msg: "Invalid prompt - must be a non-empty string"}
	}
	if n := utf8.RuneCountInString(prompt); n < minPromptLen || n > maxPromptLen {
		return "", &InvalidPromptError{Msg: fmt.Sprintf("Prompt must be between %d and %d characters", minPromptLen, maxPromptLen)}
	}
	for _, re := range injectionPatterns {
		if re.MatchString(prompt) {
			return "", &InvalidPromptError{Msg: "Invalid prompt content detected", Injection: true}
		}
	}
	return prompt, nil
}

// BuildPrompt monta o prompt padrão do painel a partir do confronto e do mercado
func BuildPrompt(home, away, market, selection string) string {
	p := fmt.Sprintf("Generate a brief betting analysis (2-3 sentences) for: %s vs %s, Market: %s", home, away, market)
	if selection != "" {
		p += ", Selection: " + selection
	}
	return p
}
