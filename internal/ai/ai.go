package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Service wraps the Gemini client behind the recipe-assistant endpoint.
type Service struct {
	Client *genai.Client
}

// NewService initializes the Gemini client.
func NewService(apiKey string) (*Service, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Service{Client: client}, nil
}

// SuggestRecipe answers a free-form cooking question, optionally grounded on
// ingredients the subscriber has on hand.
func (s *Service) SuggestRecipe(ctx context.Context, question string, ingredients []string, modelName string) (string, error) {
	if modelName == "" {
		modelName = "gemini-1.5-flash" // Fallback default
	}
	model := s.Client.GenerativeModel(modelName)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(
			"You are the Spiceshelf kitchen assistant. Suggest recipes and " +
				"cooking techniques. Be concise, use metric units, and prefer " +
				"ingredients the user already has.",
		)},
	}

	prompt := question
	if len(ingredients) > 0 {
		prompt = fmt.Sprintf("%s\n\nIngredients on hand: %v", question, ingredients)
	}

	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("error generating response: %w", err)
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from model")
	}

	var out string
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	return out, nil
}
