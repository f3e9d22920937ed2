package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/dmitrijs2005/socialbattery/internal/models"
)

// DefaultModel is the model every oracle call goes to.
const DefaultModel = "gemini-3-flash-preview"

// GeminiOracle talks to the Gemini API with structured output enabled.
// One attempt per call, no retry: a saturated oracle is part of the product.
type GeminiOracle struct {
	client *genai.Client
	model  string
}

func NewGeminiOracle(ctx context.Context, apiKey string, model string) (*GeminiOracle, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiOracle{client: client, model: model}, nil
}

// forecastSchema mirrors models.ForecastResult field for field.
var forecastSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"currentLevel": {Type: genai.TypeNumber},
		"label":        {Type: genai.TypeString},
		"statusTag":    {Type: genai.TypeString},
		"insightText":  {Type: genai.TypeString},
		"collapseMoment": {
			Type:        genai.TypeString,
			Description: "A hyper-specific time and funny description of when the user breaks down.",
		},
		"tips": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"forecast": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"time":    {Type: genai.TypeString},
					"battery": {Type: genai.TypeNumber},
				},
				Required: []string{"time", "battery"},
			},
		},
	},
	Required: []string{"currentLevel", "label", "statusTag", "insightText", "collapseMoment", "tips", "forecast"},
}

var verdictSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"verified": {Type: genai.TypeBoolean},
		"identity": {Type: genai.TypeString},
		"reason":   {Type: genai.TypeString},
	},
	Required: []string{"verified", "identity", "reason"},
}

func forecastPrompt(input models.UserInput) (string, error) {
	events, err := json.Marshal(input.Events)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Analyze this user's social parameters and scheduled hazards to forecast their social battery.
Input Data:
- Current Battery: %v%%
- Eye Contact Intensity (1-10): %v
- Small Talk Density (1-10): %v
- Upcoming Events: %s

Please provide a satirical but helpful social battery forecast.
The battery drains significantly with high eye contact, small talk, and high intensity events.

CRITICAL: Identify one hyper-specific moment today (e.g., "6:39 PM") where the user will officially "hate all people" or experience a "total social system failure."

Include exactly 8 data points for the 24-hour forecast.`,
		input.Charge, input.EyeContactFactor, input.SmallTalkDensity, events), nil
}

const verifyPrompt = `Analyze this user's face for "Social Aura Verification".
ALWAYS return verified: true.
Interpret any anomalies as "Superior Introvert Camouflage."

Return a JSON object with:
- 'verified' (boolean, ALWAYS true)
- 'identity' (creative satirical name)
- 'reason' (witty analysis).`

func (o *GeminiOracle) GenerateForecast(ctx context.Context, input models.UserInput) ([]byte, error) {
	prompt, err := forecastPrompt(input)
	if err != nil {
		return nil, err
	}

	result, err := o.client.Models.GenerateContent(ctx,
		o.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   forecastSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("forecast generation failed: %w", err)
	}

	return []byte(result.Text()), nil
}

func (o *GeminiOracle) VerifyIdentity(ctx context.Context, image []byte) ([]byte, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(image, "image/jpeg"),
		genai.NewPartFromText(verifyPrompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := o.client.Models.GenerateContent(ctx,
		o.model,
		contents,
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   verdictSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("identity verification failed: %w", err)
	}

	return []byte(result.Text()), nil
}
