package ingestion

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/resumix/resumix/internal/llm"
)

// extractedRequirements is the JSON shape the extraction prompt requests.
type extractedRequirements struct {
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	NiceToHave       []string `json:"nice_to_have"`
}

// ExtractWithLLM asks Gemini for the requirement sentences of a posting.
// Requirements, responsibilities, and nice-to-haves are merged into one
// list in that order, deduplicated, capped at MaxRequirements.
func ExtractWithLLM(ctx context.Context, text, apiKey string) ([]string, error) {
	client, err := llm.NewGeminiClient(ctx, nil, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	prompt := llm.BuildExtractionPrompt(llm.JobRequirementsSchema(), text)
	raw, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("LLM extraction failed: %w", err)
	}

	var extracted extractedRequirements
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if len(extracted.Requirements) == 0 && len(extracted.Responsibilities) == 0 {
		return nil, fmt.Errorf("LLM returned no requirements")
	}

	return MergeRequirements(extracted.Requirements, extracted.Responsibilities, extracted.NiceToHave), nil
}

// MergeRequirements concatenates requirement groups, dropping duplicates
// and entries too short to score, capped at MaxRequirements.
func MergeRequirements(groups ...[]string) []string {
	var joined []string
	for _, group := range groups {
		joined = append(joined, group...)
	}
	return SplitRequirements("- " + joinLines(joined))
}

func joinLines(lines []string) string {
	out := ""
	for i, line := range lines {
		if i > 0 {
			out += "\n- "
		}
		out += line
	}
	return out
}
