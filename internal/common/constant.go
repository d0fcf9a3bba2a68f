package common

// AuthHeaderName is the HTTP header used to carry the bearer access token on
// outbound API requests.
const AuthHeaderName = "Authorization"

// DefaultUploadFolder is the storage prefix used when an upload call does not
// specify a folder.
const DefaultUploadFolder = "uploads"
