package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrSessionNotFound indicates the session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrAPIKeyInvalid indicates the AI provider rejected or is missing
	// credentials. Detected at client construction or on an auth response.
	ErrAPIKeyInvalid = errors.New("api key invalid or missing")

	// ErrAIUnavailable indicates the embedding or generation service could
	// not be reached (network, quota, 5xx). Fatal for the current request.
	ErrAIUnavailable = errors.New("ai service unavailable")

	// ErrStoreUnavailable indicates the document store failed while matching.
	// Distinct from an empty match set, which is a defined success outcome.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrMalformedOutput indicates the model returned something that is not
	// a JSON object of the expected shape. Recoverable: flows convert it
	// into a canned answer instead of propagating.
	ErrMalformedOutput = errors.New("malformed model output")
)
