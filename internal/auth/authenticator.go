package auth

import (
	"context"

	"github.com/mmynk/republica/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register stores a new member with the given credential.
	// The member must already carry its email, name and group.
	Register(ctx context.Context, member *models.Member, credential string) error

	// Authenticate verifies the member's credentials and returns the member if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.Member, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
