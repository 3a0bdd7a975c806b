package common

const (
	// AuthorizationHeaderName carries the bearer access token.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the access token in the Authorization header.
	BearerPrefix = "Bearer "

	// RefreshTokenCookieName is the httpOnly cookie holding the refresh token.
	RefreshTokenCookieName = "refreshToken"
)
