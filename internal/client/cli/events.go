package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/socialbattery/internal/calendar"
	"github.com/dmitrijs2005/socialbattery/internal/models"
)

// AddEvent interactively declares a manual hazard. An escape plan is
// assigned from the fixed pool.
func (a *App) AddEvent(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotSignedIn
	}

	title, err := GetSimpleText(a.reader, "Hazard title", os.Stdout)
	if err != nil {
		return err
	}
	displayTime, err := GetSimpleText(a.reader, "Time (e.g. 3:00 PM)", os.Stdout)
	if err != nil {
		return err
	}
	intensity, err := GetInt(a.reader, "Intensity (1-10)", 1, 10, os.Stdout)
	if err != nil {
		return err
	}

	printlnFn("Hazard categories:")
	for i, c := range models.HazardCategories {
		printlnFn(fmt.Sprintf("  %d. %s", i+1, c))
	}
	categoryIdx, err := GetInt(a.reader, "Category number (0 for none)", 0, len(models.HazardCategories), os.Stdout)
	if err != nil {
		return err
	}
	category := ""
	if categoryIdx > 0 {
		category = models.HazardCategories[categoryIdx-1]
	}

	event := models.HazardEvent{
		ID:          uuid.NewString(),
		Title:       title,
		DisplayTime: displayTime,
		Intensity:   intensity,
		Category:    category,
		Mitigation:  models.MitigationPlans[rand.Intn(len(models.MitigationPlans))],
		Origin:      models.OriginManual,
	}

	err = a.withCurrent(ctx, func(record *models.UserRecord) error {
		record.Parameters.Events = append(record.Parameters.Events, event)
		return nil
	})
	if err != nil {
		return err
	}

	printlnFn("Hazard logged. Escape plan:", event.Mitigation)
	return nil
}

func (a *App) RemoveEvent(ctx context.Context, id string) error {
	removed := false
	err := a.withCurrent(ctx, func(record *models.UserRecord) error {
		events := record.Parameters.Events[:0]
		for _, e := range record.Parameters.Events {
			if e.ID == id {
				removed = true
				continue
			}
			events = append(events, e)
		}
		record.Parameters.Events = events
		return nil
	})
	if err != nil {
		return err
	}

	if removed {
		printlnFn("Hazard neutralized.")
	} else {
		printlnFn("No hazard with id", id)
	}
	return nil
}

// Import syncs the mock G-Calendar: imported events replace the previous
// import, manual ones stay. It also arms the one-shot obligation push.
func (a *App) Import(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotSignedIn
	}

	printlnFn("Syncing G-Calendar...")

	imported, err := a.provider.FetchHazards(ctx)
	if err != nil {
		return err
	}

	err = a.withCurrent(ctx, func(record *models.UserRecord) error {
		record.Parameters.Events = calendar.MergeImported(record.Parameters.Events, imported)
		record.Parameters.CalendarLinked = true
		return nil
	})
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Imported %d obligations. Condolences.", len(imported)))

	a.notifier.Schedule(func(n calendar.Notification) {
		a.mu.Lock()
		a.pending = append(a.pending, n.Events...)
		a.mu.Unlock()

		printlnFn(fmt.Sprintf("\n*** %s ***", n.Title))
		printlnFn(n.Message)
		for _, e := range n.Events {
			printEvent(e)
		}
		printlnFn("Type 'accept [ids]' or 'deny' to review.")
	})

	return nil
}

// Accept folds pending calendar events into the hazard list. Without ids
// everything pending is accepted.
func (a *App) Accept(ctx context.Context, ids []string) error {
	a.mu.Lock()
	pending := a.pending
	a.pending = nil
	a.mu.Unlock()

	if len(pending) == 0 {
		printlnFn("Nothing pending. Enjoy the silence.")
		return nil
	}

	err := a.withCurrent(ctx, func(record *models.UserRecord) error {
		record.Parameters.Events = calendar.AcceptPending(record.Parameters.Events, pending, ids)
		return nil
	})
	if err != nil {
		return err
	}

	printlnFn("Protocol check complete.")
	return nil
}

// Deny discards every pending calendar event.
func (a *App) Deny(_ context.Context) error {
	a.mu.Lock()
	n := len(a.pending)
	a.pending = nil
	a.mu.Unlock()

	if n == 0 {
		printlnFn("Nothing pending. Enjoy the silence.")
	} else {
		printlnFn("Obligations denied. The calendar will remember this.")
	}
	return nil
}
