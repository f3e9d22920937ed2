package identity

// AuthMode enumerates the screens of the authentication flow.
type AuthMode string

const (
	ModeFaceID            AuthMode = "FACE_ID"
	ModeLogin             AuthMode = "LOGIN"
	ModeSignup            AuthMode = "SIGNUP"
	ModeForgotRequest     AuthMode = "FORGOT_REQUEST"
	ModeForgotNewPassword AuthMode = "FORGOT_NEW_PASSWORD"
	ModeForgotSuccess     AuthMode = "FORGOT_SUCCESS"
	ModeAuthenticated     AuthMode = "AUTHENTICATED"
)

// InitialMode is where every unauthenticated session starts: the camera.
const InitialMode = ModeFaceID

// transitions lists, per mode, where the user may go next.
// ModeAuthenticated is terminal within the flow; leaving it means logout,
// which resets to InitialMode.
var transitions = map[AuthMode][]AuthMode{
	ModeFaceID:            {ModeLogin, ModeAuthenticated},
	ModeLogin:             {ModeSignup, ModeForgotRequest, ModeFaceID, ModeAuthenticated},
	ModeSignup:            {ModeLogin, ModeAuthenticated},
	ModeForgotRequest:     {ModeForgotNewPassword, ModeLogin},
	ModeForgotNewPassword: {ModeForgotSuccess, ModeLogin},
	ModeForgotSuccess:     {ModeLogin},
	ModeAuthenticated:     {},
}

// CanTransition reports whether the flow allows moving from one mode to
// another.
func CanTransition(from, to AuthMode) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
