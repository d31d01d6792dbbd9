package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/jobbotwork/jobbot/internal/model"
)

const profileInstruction = "Extract the following information from this CV " +
	"and answer with a single raw JSON object with exactly these keys: " +
	"full_name (string), email (string), phone (string), skills (array of strings), " +
	"work_experience (array of strings), education (array of strings). " +
	"Do not wrap the JSON in markdown blocks."

// GPTExtractor turns raw CV text into a structured profile and writes
// cover letters. A single attempt per call; retries are the caller's
// problem, and the caller does not retry.
type GPTExtractor struct {
	client *openai.Client
	model  string
}

func NewGPTExtractor(apiKey string) *GPTExtractor {
	return &GPTExtractor{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4o,
	}
}

// ExtractProfile submits the CV text and parses the response at the
// boundary, so downstream code only ever sees a typed record.
func (e *GPTExtractor) ExtractProfile(ctx context.Context, cvText string) (*model.Profile, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("%s\n\nHere's the CV text:\n\n%s", profileInstruction, cvText),
			},
		},
		MaxTokens: 1024,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("profile extraction failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("profile extraction returned no choices")
	}

	profile, err := model.ParseProfile([]byte(strings.TrimSpace(resp.Choices[0].Message.Content)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse extracted profile: %w", err)
	}
	return profile, nil
}

// GenerateCoverLetter writes a short cover letter for one position from
// the stored profile.
func (e *GPTExtractor) GenerateCoverLetter(ctx context.Context, profile *model.Profile, jobTitle string) (string, error) {
	encoded, err := profile.Encode()
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"Generate a professional cover letter for a %s position based on this profile: %s. "+
			"The cover letter should be concise, highlight relevant skills and experience, "+
			"and demonstrate enthusiasm for the role.",
		jobTitle, encoded,
	)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: 1024,
	})
	if err != nil {
		return "", fmt.Errorf("cover letter generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("cover letter generation returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
