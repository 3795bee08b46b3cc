package common

// AuthHeaderName is the HTTP header used to carry the access credential on
// outbound API requests.
const AuthHeaderName = "Authorization"

// RequestIDHeaderName is the HTTP header carrying the per-request id.
const RequestIDHeaderName = "X-Request-Id"
