package emailaddress

import "strings"

// EmailAddress is one address on file for a local user. A user may have
// several; at most one is primary.
type EmailAddress struct {
	ID       string `json:"id,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Primary  bool   `json:"primary"`
}

// Matches compares addresses case-insensitively
func (ea EmailAddress) Matches(email string) bool {
	return strings.EqualFold(ea.Email, email)
}
