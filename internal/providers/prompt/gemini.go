// Package prompt turns the caller's product brief into a single
// text-to-image prompt using a text-generation model.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Brief carries the caller-supplied descriptions that drive prompt synthesis.
type Brief struct {
	GeneralDescription    string
	BackgroundDescription string
	Copy                  string
}

// Generator is the contract implemented by prompt providers.
type Generator interface {
	ImagePrompt(ctx context.Context, brief Brief) (string, error)
}

// GeminiGenerator synthesizes image prompts with Gemini.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator wraps an existing genai client. The same client is shared
// with the background generator, so it is injected rather than owned here.
func NewGeminiGenerator(client *genai.Client, model string) (*GeminiGenerator, error) {
	if client == nil {
		return nil, errors.New("prompt: genai client is required")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// ImagePrompt asks the model to combine the brief into one descriptive
// text-to-image prompt. The answer is flattened to a single line before use.
func (g *GeminiGenerator) ImagePrompt(ctx context.Context, brief Brief) (string, error) {
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: buildMetaPrompt(brief)}},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("prompt: generate content: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", errors.New("prompt: model returned no text")
	}
	return flattenPrompt(text), nil
}

// buildMetaPrompt renders the fixed instruction template. The instruction to
// keep the centre of the scene empty matches the compositor, which pastes the
// packshot dead-centre at 45% of the background width.
func buildMetaPrompt(brief Brief) string {
	sb := &strings.Builder{}
	sb.WriteString("You are an expert prompt engineer for a text-to-image AI model. Combine the ")
	sb.WriteString("following details into a single, highly descriptive prompt. Requirements:\n")
	sb.WriteString("1. Leave a clear, empty space in the centre foreground suitable for pasting a ")
	sb.WriteString("product packshot later. Do not describe the product itself.\n")
	fmt.Fprintf(sb, "2. Render this text clearly within the scene (without obscuring the empty space): '%s'.\n", brief.Copy)
	fmt.Fprintf(sb, "3. Overall style: %s.\n\n", brief.GeneralDescription)
	fmt.Fprintf(sb, "BACKGROUND DETAILS:\n- %s\n\n", brief.BackgroundDescription)
	sb.WriteString("Output only the final prompt.")
	return sb.String()
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

// flattenPrompt trims the model answer and folds newlines so the prompt can be
// passed to the image model and echoed in the JSON response as one line.
func flattenPrompt(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), "\n", " ")
}

var _ Generator = (*GeminiGenerator)(nil)
