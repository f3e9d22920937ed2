// Package identity decides who the app is talking to. It offers password
// login, signup, a two-step password reset and the face-scan flow.
//
// The face scan is policy-free verification theater: whatever the oracle
// answers, including not answering at all, resolves to a signed-in identity.
package identity

import "strings"

const (
	derivedPrefix = "face_"
	derivedSuffix = "@sbf.internal"

	// fallback identities for the degraded scan paths
	identityCameraOffline  = "Shadow_Hermit_Admin"
	identityUnquantifiable = "The_Unquantifiable_Hermit"
	identityAnonymous      = "Stealth_Pro_Introvert"
)

// DeriveIdentifier maps a scanned display name onto a stable synthetic
// identifier: lowercase, whitespace collapsed to underscores, fixed prefix
// and internal domain.
func DeriveIdentifier(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.Join(strings.Fields(normalized), "_")
	return derivedPrefix + normalized + derivedSuffix
}
