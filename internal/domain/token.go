package domain

import (
	"context"
	"time"
)

const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
)

// Token 是外部签发的不透明令牌；本服务只读
type Token struct {
	Value     string     `gorm:"primaryKey;size:128" json:"-"`
	Role      string     `gorm:"size:16;not null;default:standard" json:"-"`
	ExpiresAt *time.Time `json:"-"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"-"`
}

func (Token) TableName() string { return "tokens" }

func (t *Token) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && t.ExpiresAt.Before(now)
}

type TokenRepository interface {
	FindByValue(ctx context.Context, value string) (*Token, error)
}
