package service

import (
	"context"
	"time"

	"github.com/kairowan/gatehouse/internal/domain"
)

// AuthzService decides admin access from the token table and nothing else.
// There is no constant token anywhere in this package.
type AuthzService struct {
	tokens domain.TokenRepository
	now    func() time.Time
}

func NewAuthzService(tokens domain.TokenRepository) *AuthzService {
	return &AuthzService{tokens: tokens, now: time.Now}
}

// Resolve returns the stored token, or nil for unknown/expired values.
func (a *AuthzService) Resolve(ctx context.Context, value string) (*domain.Token, error) {
	t, err := a.tokens.FindByValue(ctx, value)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Expired(a.now()) {
		return nil, nil
	}
	return t, nil
}

// AuthorizeAdmin is a pure read over stored state: same store, same answer.
func (a *AuthzService) AuthorizeAdmin(ctx context.Context, value string) (bool, error) {
	t, err := a.Resolve(ctx, value)
	if err != nil {
		return false, err
	}
	return t != nil && t.Role == domain.RoleAdmin, nil
}
