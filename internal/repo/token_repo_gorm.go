package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/kairowan/gatehouse/internal/domain"
	"github.com/kairowan/gatehouse/internal/query"
)

type TokenRepo struct{ db *gorm.DB }

func NewTokenRepo(db *gorm.DB) *TokenRepo { return &TokenRepo{db: db} }

// FindByValue is a single parameterized read; nil means no such token.
func (r *TokenRepo) FindByValue(ctx context.Context, value string) (*domain.Token, error) {
	q, err := query.BuildTokenLookup(value)
	if err != nil {
		// 形状非法的 token 等同于未知 token
		return nil, nil
	}
	var t domain.Token
	res := r.db.WithContext(ctx).Raw(q.Template, q.Args...).Scan(&t)
	if res.Error != nil {
		return nil, domain.Internal("token lookup failed", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &t, nil
}
