// Package oracle is the transport to the generative model. It builds
// prompts, declares the structured-output schemas, and hands back whatever
// raw JSON the model produced. Interpreting or validating the payload is the
// caller's job.
package oracle

import (
	"context"

	"github.com/dmitrijs2005/socialbattery/internal/models"
)

// ForecastOracle produces a raw social-battery forecast payload.
type ForecastOracle interface {
	GenerateForecast(ctx context.Context, input models.UserInput) ([]byte, error)
}

// IdentityOracle produces a raw face-verification verdict payload.
type IdentityOracle interface {
	VerifyIdentity(ctx context.Context, image []byte) ([]byte, error)
}

// Oracle is the combined surface of the generative backend.
type Oracle interface {
	ForecastOracle
	IdentityOracle
}
