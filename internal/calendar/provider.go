// Package calendar imports social hazards from the user's calendar and
// delivers the one scheduled scare. The "G-Calendar" here is a mock: the
// events are fixed, only their arrival is real.
package calendar

import (
	"context"

	"github.com/dmitrijs2005/socialbattery/internal/models"
)

// Provider fetches upcoming hazards from an external calendar.
type Provider interface {
	FetchHazards(ctx context.Context) ([]models.HazardEvent, error)
}

// MockGoogleProvider returns the same three obligations every sync.
type MockGoogleProvider struct{}

func NewMockGoogleProvider() *MockGoogleProvider {
	return &MockGoogleProvider{}
}

func (p *MockGoogleProvider) FetchHazards(_ context.Context) ([]models.HazardEvent, error) {
	return []models.HazardEvent{
		{
			ID:          "g1",
			Title:       "Status Sync (Pointless)",
			DisplayTime: "10:00 AM",
			Intensity:   7,
			Category:    "The Infinite Sync",
			Origin:      models.OriginImported,
		},
		{
			ID:          "g2",
			Title:       `"Quick" 1:1 with Manager`,
			DisplayTime: "1:30 PM",
			Intensity:   8,
			Category:    "Camera-On Zoom",
			Origin:      models.OriginImported,
		},
		{
			ID:          "g3",
			Title:       "Family Dinner Obligation",
			DisplayTime: "6:00 PM",
			Intensity:   9,
			Category:    "The Long Goodbye",
			Origin:      models.OriginImported,
		},
	}, nil
}

// MergeImported replaces previously imported events with the fresh batch
// while keeping everything the user declared by hand, manual events first.
func MergeImported(existing, imported []models.HazardEvent) []models.HazardEvent {
	merged := make([]models.HazardEvent, 0, len(existing)+len(imported))
	for _, e := range existing {
		if e.Origin != models.OriginImported {
			merged = append(merged, e)
		}
	}
	return append(merged, imported...)
}
