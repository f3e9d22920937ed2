package common

// Names of the two persisted blobs. They are kept byte-identical to the keys
// the original browser build used for localStorage, so a migration script can
// move data over without renaming anything.
const (
	// UsersBlobName keys the full user-record collection.
	UsersBlobName = "sbf_users"

	// SessionBlobName keys the active session identifier.
	SessionBlobName = "sbf_current_session"
)

// AccessTokenHeaderName is the HTTP header used to carry the access token on
// requests to the API server.
const AccessTokenHeaderName = "Authorization"
