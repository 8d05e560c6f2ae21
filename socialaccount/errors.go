package socialaccount

import (
	"fmt"

	interrors "github.com/jrsteele09/go-social-login/internal/errors"
)

// Precondition violations. Both carry the ErrInternal class: they signal a
// bug in the calling flow, not a condition the flow is expected to handle.
var (
	LoginAlreadyExistsErr   = fmt.Errorf("login already backed by a store record: %w", interrors.ErrInternal)
	TokenAccountMismatchErr = fmt.Errorf("token pre-bound to a different account: %w", interrors.ErrInternal)
)
