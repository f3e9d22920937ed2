// Package forecast turns raw oracle payloads into validated forecast
// results and caches the latest one per user.
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/logging"
	"github.com/dmitrijs2005/socialbattery/internal/models"
	"github.com/dmitrijs2005/socialbattery/internal/oracle"
)

// SaturatedMessage is what the user sees when the oracle fails, whatever
// actually went wrong underneath.
const SaturatedMessage = "Social sensors temporarily saturated. Recharge manually or try again."

// collapseFallback captions a collapse moment that arrived without one.
const collapseFallback = "The moment humanity becomes unbearable."

// Client requests forecasts and validates what comes back. The payload is
// passed through untouched: nothing is recomputed, clamped or reordered on
// this side of the wire.
type Client struct {
	oracle oracle.ForecastOracle
	logger logging.Logger
}

func NewClient(o oracle.ForecastOracle, logger logging.Logger) *Client {
	return &Client{oracle: o, logger: logger.With("module", "forecast")}
}

// payload shadows models.ForecastResult with pointer fields so that absent
// keys are distinguishable from zero values.
type payload struct {
	CurrentLevel   *float64               `json:"currentLevel"`
	Label          *string                `json:"label"`
	StatusTag      *string                `json:"statusTag"`
	InsightText    *string                `json:"insightText"`
	CollapseMoment *string                `json:"collapseMoment"`
	Tips           *[]string              `json:"tips"`
	Forecast       []models.ForecastPoint `json:"forecast"`
}

func (p *payload) validate() error {
	switch {
	case p.CurrentLevel == nil:
		return fmt.Errorf("missing field %q", "currentLevel")
	case p.Label == nil:
		return fmt.Errorf("missing field %q", "label")
	case p.StatusTag == nil:
		return fmt.Errorf("missing field %q", "statusTag")
	case p.InsightText == nil:
		return fmt.Errorf("missing field %q", "insightText")
	case p.CollapseMoment == nil:
		return fmt.Errorf("missing field %q", "collapseMoment")
	case p.Tips == nil:
		return fmt.Errorf("missing field %q", "tips")
	case p.Forecast == nil:
		return fmt.Errorf("missing field %q", "forecast")
	}
	return nil
}

func (p *payload) toResult() *models.ForecastResult {
	return &models.ForecastResult{
		CurrentLevel:   *p.CurrentLevel,
		Label:          *p.Label,
		StatusTag:      *p.StatusTag,
		InsightText:    *p.InsightText,
		CollapseMoment: *p.CollapseMoment,
		Tips:           *p.Tips,
		Forecast:       p.Forecast,
	}
}

// RequestForecast asks the oracle once. Transport failures, undecodable
// payloads and payloads with missing fields all collapse into
// common.ErrorOracleUnavailable.
func (c *Client) RequestForecast(ctx context.Context, input models.UserInput) (*models.ForecastResult, error) {
	raw, err := c.oracle.GenerateForecast(ctx, input)
	if err != nil {
		c.logger.Warn(ctx, "oracle transport failure", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrorOracleUnavailable, err)
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		c.logger.Warn(ctx, "oracle payload undecodable", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrorOracleUnavailable, err)
	}

	if err := p.validate(); err != nil {
		c.logger.Warn(ctx, "oracle payload incomplete", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrorOracleUnavailable, err)
	}

	return p.toResult(), nil
}

// SplitCollapseMoment separates "6:39 PM - descends into misanthropy" into
// its time and caption. A moment without a separator keeps the whole string
// as the time and gets the generic caption.
func SplitCollapseMoment(moment string) (string, string) {
	parts := strings.SplitN(moment, " - ", 2)
	if len(parts) < 2 || parts[1] == "" {
		return parts[0], collapseFallback
	}
	return parts[0], parts[1]
}
