package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kairowan/gatehouse/internal/collab"
	"github.com/kairowan/gatehouse/internal/core/cache"
	"github.com/kairowan/gatehouse/internal/domain"
	"github.com/kairowan/gatehouse/internal/query"
)

type ProfileService struct {
	users domain.UserRepository
	cache *cache.Cache // 可为 nil（未配置 redis 时直读库）
	ttl   time.Duration
	audit collab.AuditLog
}

func NewProfileService(users domain.UserRepository, c *cache.Cache, ttl time.Duration, audit collab.AuditLog) *ProfileService {
	return &ProfileService{users: users, cache: c, ttl: ttl, audit: audit}
}

// Get enforces owner-or-admin before touching storage and returns only the
// allow-list projection.
func (s *ProfileService) Get(ctx context.Context, idText, callerUID string, admin bool) (domain.PublicProfile, error) {
	id, err := query.ParseProfileID(idText)
	if err != nil {
		return domain.PublicProfile{}, err
	}

	if !admin {
		caller, cerr := strconv.ParseInt(callerUID, 10, 64)
		if cerr != nil || caller != id {
			return domain.PublicProfile{}, domain.Authorization("forbidden")
		}
	} else {
		s.audit.Record(collab.AuditEvent{Actor: "admin-token", Action: "profile.read", Outcome: fmt.Sprintf("id=%d", id)})
	}

	p, err := s.load(ctx, id)
	if err != nil {
		return domain.PublicProfile{}, err
	}
	if p == nil {
		return domain.PublicProfile{}, domain.NotFound("profile not found")
	}
	return *p, nil
}

func (s *ProfileService) load(ctx context.Context, id int64) (*domain.PublicProfile, error) {
	fetch := func(ctx context.Context) (*domain.PublicProfile, error) {
		u, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, domain.NotFound("profile not found")
		}
		p := domain.ProjectPublic(u)
		return &p, nil
	}
	if s.cache == nil {
		return fetch(ctx)
	}
	// 缓存里只放投影后的数据，敏感字段从不进缓存
	return cache.GetOrLoadJSON[domain.PublicProfile](s.cache, ctx, fmt.Sprintf("profile:%d", id), s.ttl, fetch)
}
