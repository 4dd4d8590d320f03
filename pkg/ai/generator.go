package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// TextGenerator produces text from a system prompt and a user prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// TemplateGenerator is an offline TextGenerator used when no LLM endpoint
// is configured. Output is deterministic for a given prompt.
type TemplateGenerator struct{}

func (TemplateGenerator) GenerateText(_ context.Context, _, userPrompt string) (string, error) {
	userPrompt = strings.TrimSpace(userPrompt)
	if userPrompt == "" {
		return "", fmt.Errorf("template generator: empty prompt")
	}
	return "Discover " + userPrompt + ". Book your island experience today.", nil
}

// PromptFromFields renders prompt metadata as sorted "key: value" lines.
func PromptFromFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k, v := range fields {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, strings.TrimSpace(fields[k]))
	}
	return strings.TrimSpace(b.String())
}
