package users

type UserRepo interface {
	// Create persists a new user, assigning an ID if none is set.
	// Returns internal/errors.ErrConflict if the email is already taken.
	Create(user *User) (*User, error)
	Upsert(user *User) error
	Delete(email string) error
	GetByEmail(email string) (*User, error)
	GetByID(ID string) (*User, error)
	SetBlocked(email string, blocked bool) error
	SetVerified(email string, verified bool) error
}
