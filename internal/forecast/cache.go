package forecast

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/models"
	"github.com/dmitrijs2005/socialbattery/internal/store"
)

// Cache persists the most recent successful forecast per user, together
// with the exact input that produced it.
type Cache struct {
	store store.Store
}

func NewCache(st store.Store) *Cache {
	return &Cache{store: st}
}

// Attach writes input and result onto the owning record in one store write,
// creating the record when the identifier is unknown. Each user holds at
// most one cached forecast; attaching replaces the previous one.
func (c *Cache) Attach(ctx context.Context, identifier string, input models.UserInput, result *models.ForecastResult) error {
	record, err := c.store.Find(ctx, identifier)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		r := models.NewUserRecord(identifier, "")
		record = &r
	}

	record.Parameters = input
	record.LastForecast = result
	return c.store.Upsert(ctx, *record)
}

// Last returns the cached forecast, or nil when the user never completed a
// successful request.
func (c *Cache) Last(ctx context.Context, identifier string) (*models.ForecastResult, error) {
	record, err := c.store.Find(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.LastForecast, nil
}
