// Package service implements the decision logic behind the request boundary:
// authentication, admin authorization, profile projection, export and relay.
package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/kairowan/gatehouse/internal/collab"
	"github.com/kairowan/gatehouse/internal/core/auth"
	"github.com/kairowan/gatehouse/internal/domain"
	"github.com/kairowan/gatehouse/pkg/utils"
)

type LoginResult struct {
	Authenticated bool   `json:"authenticated"`
	UserID        int64  `json:"userId,omitempty"`
	Token         string `json:"token,omitempty"`
}

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
	audit collab.AuditLog
	log   *zap.Logger

	// dummyHash burns the same bcrypt cost when the username does not exist,
	// so unknown-user and wrong-password take the same path.
	dummyHash string
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer, audit collab.AuditLog, log *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		jwter:     jwter,
		audit:     audit,
		log:       log,
		dummyHash: utils.HashPassword(utils.NewID()),
	}
}

// Authenticate checks the pair against stored credentials. Unknown username
// and wrong password return the same shape; the plaintext password is never
// logged or stored.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (LoginResult, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, err
	}

	ok := false
	if u == nil {
		utils.CheckPassword(password, s.dummyHash)
	} else {
		ok = utils.CheckPassword(password, u.PasswordHash)
	}

	outcome := "failure"
	if ok {
		outcome = "success"
	}
	s.audit.Record(collab.AuditEvent{Actor: username, Action: "login", Outcome: outcome})

	if !ok {
		return LoginResult{Authenticated: false}, nil
	}

	tok, err := s.jwter.Issue(strconv.FormatInt(u.ID, 10))
	if err != nil {
		return LoginResult{}, domain.Internal("issue session failed", err)
	}
	return LoginResult{Authenticated: true, UserID: u.ID, Token: tok}, nil
}
