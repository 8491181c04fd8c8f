package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/republica/internal/models"
	"github.com/mmynk/republica/internal/storage"
)

type memStore struct {
	byID    map[string]*models.Member
	byEmail map[string]*models.Member
}

func newMemStore() *memStore {
	return &memStore{byID: map[string]*models.Member{}, byEmail: map[string]*models.Member{}}
}

func (s *memStore) CreateMember(_ context.Context, m *models.Member) error {
	if _, ok := s.byEmail[m.Email]; ok {
		return storage.ErrEmailExists
	}
	if m.ID == "" {
		m.ID = "member-" + m.Email
	}
	s.byID[m.ID] = m
	s.byEmail[m.Email] = m
	return nil
}

func (s *memStore) GetMemberByEmail(_ context.Context, email string) (*models.Member, error) {
	if m, ok := s.byEmail[email]; ok {
		return m, nil
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) GetMember(_ context.Context, id string) (*models.Member, error) {
	if m, ok := s.byID[id]; ok {
		return m, nil
	}
	return nil, storage.ErrNotFound
}

func TestJWTManager(t *testing.T) {
	member := &models.Member{ID: "m1", Email: "ana@example.com", GroupID: "g1", Role: models.RoleFinanceAdmin}

	t.Run("round trip", func(t *testing.T) {
		mgr := NewJWTManager("secret", time.Hour)
		token, err := mgr.Generate(member)
		require.NoError(t, err)

		claims, err := mgr.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "m1", claims.MemberID())
		assert.Equal(t, "g1", claims.GroupID)
		assert.Equal(t, models.RoleFinanceAdmin, claims.Role)
		assert.Equal(t, TokenIssuer, claims.Issuer)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("tokens are unique per login", func(t *testing.T) {
		mgr := NewJWTManager("secret", time.Hour)
		first, err := mgr.Generate(member)
		require.NoError(t, err)
		second, err := mgr.Generate(member)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTManager("secret", time.Hour).Generate(member)
		require.NoError(t, err)

		_, err = NewJWTManager("other", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		mgr := NewJWTManager("secret", time.Hour)
		token, err := mgr.Generate(member)
		require.NoError(t, err)

		mgr.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err = mgr.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "splitter",
				Subject:   "m1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = NewJWTManager("secret", time.Hour).Validate(foreign)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other signing method", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    TokenIssuer,
				Subject:   "m1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = NewJWTManager("secret", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("member without ID", func(t *testing.T) {
		_, err := NewJWTManager("secret", time.Hour).Generate(&models.Member{Email: "x@example.com"})
		assert.Error(t, err)
	})
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	a := NewPasswordAuthenticator(store)

	member := &models.Member{Name: "Ana", Email: "ana@example.com", GroupID: "g1"}
	require.NoError(t, a.Register(ctx, member, "correct-horse"))
	assert.NotEqual(t, "correct-horse", member.PasswordHash)

	t.Run("weak password", func(t *testing.T) {
		err := a.Register(ctx, &models.Member{Email: "bia@example.com"}, "short")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := a.Register(ctx, &models.Member{Email: "ana@example.com"}, "long-enough")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("authenticate", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "ana@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, member.ID, got.ID)

		_, err = a.Authenticate(ctx, "ana@example.com", "wrong-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = a.Authenticate(ctx, "nobody@example.com", "correct-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestIdentityProvider(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	member := &models.Member{ID: "m1", Email: "ana@example.com", GroupID: "g1", Role: models.RoleFinanceAdmin}
	require.NoError(t, store.CreateMember(ctx, member))

	tokens := NewJWTManager("secret", time.Hour)
	provider := NewIdentityProvider(tokens, store)

	token, err := tokens.Generate(member)
	require.NoError(t, err)

	t.Run("valid bearer", func(t *testing.T) {
		id, err := provider.Resolve(ctx, "Bearer "+token)
		require.NoError(t, err)
		assert.Equal(t, models.Identity{MemberID: "m1", GroupID: "g1", Role: models.RoleFinanceAdmin}, *id)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := provider.Resolve(ctx, "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("not a bearer", func(t *testing.T) {
		_, err := provider.Resolve(ctx, "Basic abc")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("role change applies to issued tokens", func(t *testing.T) {
		member.Role = models.RoleResident
		t.Cleanup(func() { member.Role = models.RoleFinanceAdmin })

		id, err := provider.Resolve(ctx, "Bearer "+token)
		require.NoError(t, err)
		assert.Equal(t, models.RoleResident, id.Role)
	})

	t.Run("deleted member", func(t *testing.T) {
		ghost, err := tokens.Generate(&models.Member{ID: "ghost", Email: "ghost@example.com"})
		require.NoError(t, err)

		_, err = provider.Resolve(ctx, "Bearer "+ghost)
		assert.ErrorIs(t, err, ErrUnknownMember)
	})
}
