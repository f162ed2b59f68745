package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/kairowan/gatehouse/internal/domain"
	"github.com/kairowan/gatehouse/internal/query"
)

type RecordRepo struct {
	db      *gorm.DB
	maxTerm int
}

func NewRecordRepo(db *gorm.DB, maxTermLen int) *RecordRepo {
	return &RecordRepo{db: db, maxTerm: maxTermLen}
}

// SearchByName executes the fixed search statement with the term bound as a
// literal LIKE argument. The statement shape is identical for every term.
func (r *RecordRepo) SearchByName(ctx context.Context, term string) ([]domain.Record, error) {
	q, err := query.BuildSearch(term, r.maxTerm)
	if err != nil {
		return nil, err
	}
	recs := make([]domain.Record, 0)
	if err := r.db.WithContext(ctx).Raw(q.Template, q.Args...).Scan(&recs).Error; err != nil {
		return nil, domain.Internal("record search failed", err)
	}
	return recs, nil
}
