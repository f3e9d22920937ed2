package calendar

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/socialbattery/internal/models"
)

// DefaultNotifyDelay is how long after linking the calendar the new
// obligation "manifests".
const DefaultNotifyDelay = 10 * time.Second

// Notification is a push about freshly manifested obligations. The events
// are pending until the user accepts or denies them.
type Notification struct {
	Title   string
	Message string
	Events  []models.HazardEvent
}

// Notifier delivers the one-shot "new obligation" push. It fires at most
// once per Notifier lifetime; there is no cancellation and no repetition.
type Notifier struct {
	mu    sync.Mutex
	delay time.Duration
	fired bool
}

func NewNotifier(delay time.Duration) *Notifier {
	if delay <= 0 {
		delay = DefaultNotifyDelay
	}
	return &Notifier{delay: delay}
}

func workshopEvent() models.HazardEvent {
	return models.HazardEvent{
		ID:          fmt.Sprintf("g4-%s", uuid.New()),
		Title:       "Unavoidable Workshop",
		DisplayTime: "3:00 PM",
		Intensity:   9,
		Category:    "Networking Hell",
		Mitigation:  "Hide in the printer room.",
		Origin:      models.OriginImported,
	}
}

// Schedule arms the timer and reports whether it armed. Once the push has
// fired (or is armed), further calls are no-ops. deliver runs on the timer
// goroutine.
func (n *Notifier) Schedule(deliver func(Notification)) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.fired {
		return false
	}
	n.fired = true

	time.AfterFunc(n.delay, func() {
		deliver(Notification{
			Title:   "Intrusion Alert",
			Message: "A new social obligation has manifested in your G-Calendar. Protocol check required.",
			Events:  []models.HazardEvent{workshopEvent()},
		})
	})

	return true
}

// AcceptPending folds accepted pending events into the existing list.
// A nil or empty ids list accepts everything; otherwise only the named
// events survive the review. Denied events simply vanish.
func AcceptPending(existing, pending []models.HazardEvent, ids []string) []models.HazardEvent {
	if len(ids) == 0 {
		return append(existing, pending...)
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	for _, e := range pending {
		if wanted[e.ID] {
			existing = append(existing, e)
		}
	}
	return existing
}
