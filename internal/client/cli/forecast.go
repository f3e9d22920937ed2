package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/forecast"
	"github.com/dmitrijs2005/socialbattery/internal/models"
)

var errNotSignedIn = errors.New("not signed in")

// withCurrent runs fn with the active record under the state lock and
// persists the record afterwards.
func (a *App) withCurrent(ctx context.Context, fn func(record *models.UserRecord) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return errNotSignedIn
	}
	if err := fn(a.current); err != nil {
		return err
	}
	return a.store.Upsert(ctx, *a.current)
}

func (a *App) Show(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return errNotSignedIn
	}

	p := a.current.Parameters
	printlnFn(fmt.Sprintf("Battery: %.0f%%  Eye contact: %.0f/10  Small talk: %.0f/10  Calendar linked: %v",
		p.Charge, p.EyeContactFactor, p.SmallTalkDensity, p.CalendarLinked))

	if len(p.Events) == 0 {
		printlnFn("No upcoming social hazards. Suspiciously quiet.")
	} else {
		printlnFn("Upcoming social hazards:")
		for _, e := range p.Events {
			printEvent(e)
		}
	}

	if len(a.pending) > 0 {
		printlnFn("Pending calendar events (accept/deny):")
		for _, e := range a.pending {
			printEvent(e)
		}
	}

	if a.current.LastForecast != nil {
		printForecast(a.current.LastForecast)
	}
	return nil
}

// SetFactor updates one of the numeric parameters: charge (0-100),
// eye (1-10), talk (1-10).
func (a *App) SetFactor(ctx context.Context, factor string, value string) error {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", value)
	}

	return a.withCurrent(ctx, func(record *models.UserRecord) error {
		switch factor {
		case "charge":
			if n < 0 || n > 100 {
				return fmt.Errorf("charge must be between 0 and 100")
			}
			record.Parameters.Charge = n
		case "eye":
			if n < 1 || n > 10 {
				return fmt.Errorf("eye contact intensity must be between 1 and 10")
			}
			record.Parameters.EyeContactFactor = n
		case "talk":
			if n < 1 || n > 10 {
				return fmt.Errorf("small talk density must be between 1 and 10")
			}
			record.Parameters.SmallTalkDensity = n
		default:
			return fmt.Errorf("unknown factor %q", factor)
		}
		return nil
	})
}

// Forecast consults the oracle with the current parameters. While a request
// is in flight, repeated submissions are suppressed. A saturated oracle
// prints its excuse and leaves the cached forecast alone.
func (a *App) Forecast(ctx context.Context) error {
	a.mu.Lock()
	if a.current == nil {
		a.mu.Unlock()
		return errNotSignedIn
	}
	if a.inFlight {
		a.mu.Unlock()
		printlnFn("The oracle is already thinking. One existential crisis at a time.")
		return nil
	}
	a.inFlight = true
	identifier := a.current.Identifier
	input := a.current.Parameters
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.inFlight = false
		a.mu.Unlock()
	}()

	printlnFn("Consulting the oracle...")

	result, err := a.client.RequestForecast(ctx, input)
	if err != nil {
		if errors.Is(err, common.ErrorOracleUnavailable) {
			printlnFn(forecast.SaturatedMessage)
			return nil
		}
		return err
	}

	if err := a.cache.Attach(ctx, identifier, input, result); err != nil {
		return err
	}

	a.mu.Lock()
	a.current.Parameters = input
	a.current.LastForecast = result
	a.mu.Unlock()

	printForecast(result)
	return nil
}

func printEvent(e models.HazardEvent) {
	line := fmt.Sprintf("  [%s] %s at %s, intensity %d/10", e.ID, e.Title, e.DisplayTime, e.Intensity)
	if e.Category != "" {
		line += " (" + e.Category + ")"
	}
	printlnFn(line)
	if e.Mitigation != "" {
		printlnFn("        escape plan:", e.Mitigation)
	}
}

func printForecast(result *models.ForecastResult) {
	printlnFn(fmt.Sprintf("Current level: %.0f%% (%s) [%s]", result.CurrentLevel, result.Label, result.StatusTag))
	printlnFn(result.InsightText)

	moment, caption := forecast.SplitCollapseMoment(result.CollapseMoment)
	printlnFn(fmt.Sprintf("Collapse moment: %s (%s)", moment, caption))

	if len(result.Forecast) > 0 {
		printlnFn("24h outlook:")
		for _, point := range result.Forecast {
			printlnFn(fmt.Sprintf("  %-8s %5.1f%%", point.Time, point.Battery))
		}
	}

	for _, tip := range result.Tips {
		printlnFn("Tip:", tip)
	}
}
