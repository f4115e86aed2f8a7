package domain

// UserType classifies user accounts.
//
// Stored as its integer value in the Users table; 0 must remain Customer,
// 1 User and 2 Admin for compatibility with existing databases.
type UserType int

const (
	UserTypeCustomer UserType = iota
	UserTypeUser
	UserTypeAdmin
)

// Valid reports whether the user type is one of the enumerated values.
func (t UserType) Valid() bool {
	return t >= UserTypeCustomer && t <= UserTypeAdmin
}

// User is a credential record for an account that can authenticate.
//
// Salt, Iterations and HashAlgorithm are recorded per user so that hashes
// created under older defaults stay verifiable after the defaults change.
type User struct {
	ID            int64
	Username      string
	UserType      UserType
	PasswordHash  string
	Iterations    int
	Salt          string
	HashAlgorithm string
}
