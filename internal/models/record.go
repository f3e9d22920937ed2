// Package models holds the persisted and wire-level data types shared by the
// CLI client, the API server and the storage backends.
package models

// UserRecord is one user's persisted identity, parameters and cached forecast.
// Identifier is the primary key; the satire domain calls it an "email".
// Credential is absent for identities created by the face-scan flow and is
// stored and compared as-is (see the project notes on intentional satire).
type UserRecord struct {
	Identifier   string          `json:"identifier"`
	Credential   string          `json:"credential,omitempty"`
	Parameters   UserInput       `json:"parameters"`
	LastForecast *ForecastResult `json:"lastForecast,omitempty"`
}

// UserInput is the last-submitted forecast input for a user.
type UserInput struct {
	Charge           float64       `json:"charge"`
	EyeContactFactor float64       `json:"eyeContactFactor"`
	SmallTalkDensity float64       `json:"smallTalkDensity"`
	Events           []HazardEvent `json:"events"`
	CalendarLinked   bool          `json:"calendarLinked,omitempty"`
}

// DefaultUserInput returns the baseline parameters every new identity starts
// with: 75% charge, both sensitivity factors at 5, no declared hazards.
func DefaultUserInput() UserInput {
	return UserInput{
		Charge:           75,
		EyeContactFactor: 5,
		SmallTalkDensity: 5,
		Events:           []HazardEvent{},
	}
}

// NewUserRecord creates a record with baseline parameters and no cached
// forecast. The credential may be empty (face-scan identities).
func NewUserRecord(identifier, credential string) UserRecord {
	return UserRecord{
		Identifier: identifier,
		Credential: credential,
		Parameters: DefaultUserInput(),
	}
}
