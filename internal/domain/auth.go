package domain

// LoginResult reports the outcome of a login attempt. Never persisted.
//
// UserID and UserType carry meaning only when Success is true; ErrorMessage
// is non-empty only on failure and is identical for unknown usernames and
// wrong passwords.
type LoginResult struct {
	Success      bool
	UserID       int64
	UserType     UserType
	ErrorMessage string
}
