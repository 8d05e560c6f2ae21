package emailaddress

type Repo interface {
	// Create persists a new address. Returns internal/errors.ErrConflict
	// if the (user, email) pair already exists.
	Create(addr *EmailAddress) (*EmailAddress, error)

	// ListByUser returns all addresses on file for a user
	ListByUser(userID string) ([]EmailAddress, error)

	// SetPrimary marks one address primary and clears the flag on the rest
	SetPrimary(userID, email string) error

	// Delete removes an address from a user
	Delete(userID, email string) error
}
