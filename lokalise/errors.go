package lokalise

import "fmt"

// AuthError means the API rejected the token. Not retried: a bad token
// stays bad.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("lokalise: authentication rejected (status %d), check the API token", e.Status)
}

// NetworkError wraps transport failures and retryable server-side
// statuses that persisted through all retry attempts.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("lokalise: request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means the API answered but the payload cannot
// be used: undecodable JSON, keys without a usable name, or duplicate
// key names within one project.
type MalformedResponseError struct {
	Msg string
	Err error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lokalise: malformed response: %s: %v", e.Msg, e.Err)
	}
	return "lokalise: malformed response: " + e.Msg
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
