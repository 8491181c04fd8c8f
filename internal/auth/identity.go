package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/republica/internal/models"
	"github.com/mmynk/republica/internal/storage"
)

// ErrUnknownMember is returned when a valid token names a member that no longer exists.
var ErrUnknownMember = errors.New("token member does not exist")

// MemberLookup resolves a member by ID.
type MemberLookup interface {
	GetMember(ctx context.Context, memberID string) (*models.Member, error)
}

// IdentityProvider turns a bearer token into the caller's identity.
type IdentityProvider struct {
	tokens  *JWTManager
	members MemberLookup
}

// NewIdentityProvider creates an identity provider backed by a JWT manager and member lookup.
func NewIdentityProvider(tokens *JWTManager, members MemberLookup) *IdentityProvider {
	return &IdentityProvider{tokens: tokens, members: members}
}

// Resolve validates an Authorization header value ("Bearer <token>") and
// returns the identity of the member it names. Group and role are read from
// storage, so changes apply without reissuing tokens.
func (p *IdentityProvider) Resolve(ctx context.Context, authHeader string) (*models.Identity, error) {
	if authHeader == "" {
		return nil, ErrMissingToken
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		return nil, ErrInvalidToken
	}

	claims, err := p.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	member, err := p.members.GetMember(ctx, claims.MemberID())
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUnknownMember
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token member: %w", err)
	}

	return &models.Identity{
		MemberID: member.ID,
		GroupID:  member.GroupID,
		Role:     member.Role,
	}, nil
}
