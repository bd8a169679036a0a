package common

// AuthTokenHeaderName is the HTTP header carrying the auth token, both on
// incoming requests and on register/login responses.
const AuthTokenHeaderName = "x-auth"

// TokenPurposeAuth is the only token purpose issued by the server.
const TokenPurposeAuth = "auth"

// RequestIDHeaderName is echoed on every response.
const RequestIDHeaderName = "X-Request-ID"
