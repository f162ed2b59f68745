package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kairowan/gatehouse/internal/domain"
)

func newProfileFixture() (*ProfileService, *memAudit) {
	users := &fakeUsers{users: []domain.User{{
		ID:           11,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		NationalID:   "123-45-6789",
		PaymentCard:  "4111111111111111",
	}}}
	audit := &memAudit{}
	return NewProfileService(users, nil, 0, audit), audit
}

func TestProfileOwnerRead(t *testing.T) {
	svc, _ := newProfileFixture()

	p, err := svc.Get(context.Background(), "11", "11", false)
	require.NoError(t, err)
	assert.Equal(t, domain.PublicProfile{ID: 11, Username: "alice", Email: "alice@example.com"}, p)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
	assert.NotContains(t, string(b), "123-45-6789")
	assert.NotContains(t, string(b), "4111111111111111")
}

func TestProfileNonOwnerForbidden(t *testing.T) {
	svc, _ := newProfileFixture()

	_, err := svc.Get(context.Background(), "11", "22", false)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindAuthorization))

	// 无会话身份且非 admin 同样拒绝
	_, err = svc.Get(context.Background(), "11", "", false)
	assert.True(t, domain.IsKind(err, domain.KindAuthorization))
}

func TestProfileAdminReadIsAudited(t *testing.T) {
	svc, audit := newProfileFixture()

	p, err := svc.Get(context.Background(), "11", "", true)
	require.NoError(t, err)
	assert.Equal(t, int64(11), p.ID)

	evs := audit.all()
	require.Len(t, evs, 1)
	assert.Equal(t, "profile.read", evs[0].Action)
}

func TestProfileNotFound(t *testing.T) {
	svc, _ := newProfileFixture()

	_, err := svc.Get(context.Background(), "99", "", true)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestProfileInvalidID(t *testing.T) {
	svc, _ := newProfileFixture()

	for _, id := range []string{"abc", "-1", "0", "1; DROP TABLE users"} {
		_, err := svc.Get(context.Background(), id, "11", true)
		require.Error(t, err, "id %q", id)
		assert.True(t, domain.IsKind(err, domain.KindValidation), "id %q", id)
	}
}
