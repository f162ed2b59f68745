package service

import (
	"context"
	"sync"
	"time"

	"github.com/kairowan/gatehouse/internal/collab"
	"github.com/kairowan/gatehouse/internal/domain"
)

// --- shared fakes ---

type fakeUsers struct {
	users []domain.User
	err   error
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.users {
		if f.users[i].Username == username {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) List(_ context.Context, offset, limit int) ([]domain.User, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.users, int64(len(f.users)), nil
}

func (f *fakeUsers) SoftDelete(_ context.Context, id int64) error { return f.err }

type fakeTokens struct {
	tokens map[string]*domain.Token
	err    error
}

func (f *fakeTokens) FindByValue(_ context.Context, value string) (*domain.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tokens[value], nil
}

type memAudit struct {
	mu     sync.Mutex
	events []collab.AuditEvent
}

func (a *memAudit) Record(ev collab.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	a.events = append(a.events, ev)
}

func (a *memAudit) all() []collab.AuditEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]collab.AuditEvent(nil), a.events...)
}
