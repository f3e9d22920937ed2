package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/logging"
	"github.com/dmitrijs2005/socialbattery/internal/models"
)

type stubOracle struct {
	payload []byte
	err     error
}

func (s *stubOracle) GenerateForecast(_ context.Context, _ models.UserInput) ([]byte, error) {
	return s.payload, s.err
}

const wellFormedPayload = `{
	"currentLevel": 42,
	"label": "Running on Fumes",
	"statusTag": "DO NOT PERCEIVE",
	"insightText": "Your aura needs airplane mode.",
	"collapseMoment": "6:39 PM - officially hates all people",
	"tips": ["Cancel something.", "Hydrate alone."],
	"forecast": [
		{"time": "Now", "battery": 42},
		{"time": "3 PM", "battery": 30},
		{"time": "6 PM", "battery": 12},
		{"time": "9 PM", "battery": 4},
		{"time": "12 AM", "battery": 55},
		{"time": "3 AM", "battery": 80},
		{"time": "6 AM", "battery": 95},
		{"time": "9 AM", "battery": 74}
	]
}`

func TestClient_WellFormedPayloadPassesThroughUnchanged(t *testing.T) {
	c := NewClient(&stubOracle{payload: []byte(wellFormedPayload)}, logging.NewNullLogger())

	got, err := c.RequestForecast(context.Background(), models.DefaultUserInput())
	require.NoError(t, err)

	var want models.ForecastResult
	require.NoError(t, json.Unmarshal([]byte(wellFormedPayload), &want))
	assert.Equal(t, &want, got)
	assert.Len(t, got.Forecast, 8)
}

func TestClient_TransportErrorMapsToOracleUnavailable(t *testing.T) {
	c := NewClient(&stubOracle{err: errors.New("429 quota exceeded")}, logging.NewNullLogger())

	_, err := c.RequestForecast(context.Background(), models.DefaultUserInput())
	assert.ErrorIs(t, err, common.ErrorOracleUnavailable)
}

func TestClient_UndecodablePayloadMapsToOracleUnavailable(t *testing.T) {
	c := NewClient(&stubOracle{payload: []byte(`the model wrote prose instead`)}, logging.NewNullLogger())

	_, err := c.RequestForecast(context.Background(), models.DefaultUserInput())
	assert.ErrorIs(t, err, common.ErrorOracleUnavailable)
}

func TestClient_MissingFieldMapsToOracleUnavailable(t *testing.T) {
	fields := []string{"currentLevel", "label", "statusTag", "insightText", "collapseMoment", "tips", "forecast"}
	for _, field := range fields {
		t.Run("missing "+field, func(t *testing.T) {
			var m map[string]any
			require.NoError(t, json.Unmarshal([]byte(wellFormedPayload), &m))
			delete(m, field)
			raw, err := json.Marshal(m)
			require.NoError(t, err)

			c := NewClient(&stubOracle{payload: raw}, logging.NewNullLogger())
			_, err = c.RequestForecast(context.Background(), models.DefaultUserInput())
			assert.ErrorIs(t, err, common.ErrorOracleUnavailable)
		})
	}
}

func TestClient_WrongTypeMapsToOracleUnavailable(t *testing.T) {
	c := NewClient(&stubOracle{payload: []byte(`{
		"currentLevel": "high",
		"label": "x", "statusTag": "x", "insightText": "x",
		"collapseMoment": "x", "tips": [], "forecast": []
	}`)}, logging.NewNullLogger())

	_, err := c.RequestForecast(context.Background(), models.DefaultUserInput())
	assert.ErrorIs(t, err, common.ErrorOracleUnavailable)
}

func TestSplitCollapseMoment(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantTime    string
		wantCaption string
	}{
		{
			name:        "time and caption",
			in:          "6:39 PM - officially hates all people",
			wantTime:    "6:39 PM",
			wantCaption: "officially hates all people",
		},
		{
			name:        "caption containing the separator",
			in:          "6:39 PM - crash - burn",
			wantTime:    "6:39 PM",
			wantCaption: "crash - burn",
		},
		{
			name:        "no separator falls back to generic caption",
			in:          "6:39 PM",
			wantTime:    "6:39 PM",
			wantCaption: "The moment humanity becomes unbearable.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTime, gotCaption := SplitCollapseMoment(tt.in)
			assert.Equal(t, tt.wantTime, gotTime)
			assert.Equal(t, tt.wantCaption, gotCaption)
		})
	}
}
