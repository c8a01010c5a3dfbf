// Package identity is the authentication provider: it verifies bearer tokens
// against the user directory and offers the administrative operations used
// by account deletion.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/users"
)

const DefaultAnonymousEmail = "anonymous@resume-builder.local"

// Provider verifies HS256 tokens whose subject must be a live user.
type Provider struct {
	Secret         []byte
	Users          *users.Service
	AnonymousEmail string

	mu          sync.Mutex
	anonymousID string
}

// NewProvider constructs a Provider.
func NewProvider(secret []byte, svc *users.Service, anonymousEmail string) *Provider {
	if strings.TrimSpace(anonymousEmail) == "" {
		anonymousEmail = DefaultAnonymousEmail
	}
	return &Provider{Secret: secret, Users: svc, AnonymousEmail: anonymousEmail}
}

// GetUser resolves a token to its user. Unknown subjects are registered
// from the token claims on first sight; deleted and anonymous accounts are
// rejected.
func (p *Provider) GetUser(ctx context.Context, token string) (users.User, error) {
	claims, err := auth.VerifyJWT(token, p.Secret)
	if err != nil {
		return users.User{}, auth.ErrInvalidToken
	}

	user, err := p.Users.GetByID(ctx, claims.Subject)
	if errors.Is(err, users.ErrNotFound) {
		user, err = p.register(ctx, claims)
	}
	if err != nil {
		return users.User{}, err
	}
	if user.Deleted() || user.IsAnonymous {
		return users.User{}, auth.ErrInvalidToken
	}
	return user, nil
}

func (p *Provider) register(ctx context.Context, claims auth.Claims) (users.User, error) {
	if strings.TrimSpace(claims.Email) == "" {
		return users.User{}, auth.ErrInvalidToken
	}
	user, err := p.Users.Create(ctx, users.User{
		ID:       claims.Subject,
		Email:    claims.Email,
		FullName: claims.Name,
	})
	if errors.Is(err, users.ErrDuplicate) {
		// Either a concurrent first request won, or the email belongs to
		// another subject.
		user, err = p.Users.GetByID(ctx, claims.Subject)
		if errors.Is(err, users.ErrNotFound) {
			return users.User{}, auth.ErrInvalidToken
		}
		return user, err
	}
	if err != nil {
		return users.User{}, err
	}
	telemetry.Info("identity.user_registered", map[string]any{"user_id": user.ID})
	return user, nil
}

// Authenticate implements auth.Authenticator.
func (p *Provider) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	user, err := p.GetUser(ctx, token)
	if err != nil {
		return auth.Principal{}, err
	}
	return auth.Principal{UserID: user.ID, Email: user.Email}, nil
}

// IssueToken signs a token for an existing user.
func (p *Provider) IssueToken(user users.User) (string, error) {
	return auth.SignJWT(auth.Claims{
		Email:            user.Email,
		Name:             user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
	}, p.Secret)
}

// ListUsers returns every live account.
func (p *Provider) ListUsers(ctx context.Context) ([]users.User, error) {
	return p.Users.List(ctx)
}

// CreateUser registers an account outside the token flow.
func (p *Provider) CreateUser(ctx context.Context, email, fullName string) (users.User, error) {
	return p.Users.Create(ctx, users.User{Email: email, FullName: fullName})
}

// DeleteUser removes an account. Tokens for it stop resolving immediately.
func (p *Provider) DeleteUser(ctx context.Context, userID string) error {
	if userID == p.cachedAnonymousID() {
		return fmt.Errorf("refusing to delete the anonymous user")
	}
	return p.Users.Delete(ctx, userID)
}

// AnonymousUser returns the sentinel account that receives resumes of
// deleted users, creating it on first use.
func (p *Provider) AnonymousUser(ctx context.Context) (users.User, error) {
	if id := p.cachedAnonymousID(); id != "" {
		user, err := p.Users.GetByID(ctx, id)
		if err == nil && !user.Deleted() {
			return user, nil
		}
	}

	user, err := p.Users.GetByEmail(ctx, p.AnonymousEmail)
	if errors.Is(err, users.ErrNotFound) {
		user, err = p.Users.Create(ctx, users.User{
			Email:       p.AnonymousEmail,
			FullName:    "Anonymous",
			IsAnonymous: true,
		})
		if errors.Is(err, users.ErrDuplicate) {
			user, err = p.Users.GetByEmail(ctx, p.AnonymousEmail)
		} else if err == nil {
			telemetry.Info("identity.anonymous_user_created", map[string]any{"user_id": user.ID})
		}
	}
	if err != nil {
		return users.User{}, fmt.Errorf("resolve anonymous user: %w", err)
	}

	p.mu.Lock()
	p.anonymousID = user.ID
	p.mu.Unlock()
	return user, nil
}

func (p *Provider) cachedAnonymousID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.anonymousID
}

var _ auth.Authenticator = (*Provider)(nil)
