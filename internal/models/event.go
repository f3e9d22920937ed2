package models

// EventOrigin says how a hazard event entered the user's log.
type EventOrigin string

const (
	OriginManual   EventOrigin = "manual"
	OriginImported EventOrigin = "imported"
)

// HazardEvent is a user-declared or imported upcoming social obligation.
// Events are immutable once logged: they are removed by ID or replaced
// wholesale when the owning list is resubmitted, never edited in place.
type HazardEvent struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	DisplayTime string      `json:"displayTime"`
	Intensity   int         `json:"intensity"`
	Category    string      `json:"category,omitempty"`
	Mitigation  string      `json:"mitigation,omitempty"`
	Origin      EventOrigin `json:"origin"`
}

// HazardCategories is the fixed set of satirical hazard labels.
var HazardCategories = []string{
	"The Infinite Sync",
	"Mandatory Fun",
	"Surprise Small Talk",
	"Networking Hell",
	"Camera-On Zoom",
	"The Long Goodbye",
}

// MitigationPlans is the fixed pool of escape plans assigned to manually
// declared hazards.
var MitigationPlans = []string{
	"Fake a bad internet connection.",
	"Sudden 'emergency' vet appointment for a goldfish.",
	"Nod rhythmically while slowly backing towards the exit.",
	"Develop a temporary, non-specific cough.",
	"The classic 'Irish Exit'.",
	"Checking the 'important email' on a locked screen.",
}

// IsValidCategory reports whether label belongs to the fixed category set.
// An empty label is valid: the category is optional.
func IsValidCategory(label string) bool {
	if label == "" {
		return true
	}
	for _, c := range HazardCategories {
		if c == label {
			return true
		}
	}
	return false
}
