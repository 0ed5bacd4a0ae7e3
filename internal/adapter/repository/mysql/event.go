package mysql

import (
	"context"
	"time"

	eventDomain "nft-lending-backend/internal/domain/event"
	"nft-lending-backend/pkg/id"

	"gorm.io/gorm"
)

type EventRepository struct{ db *gorm.DB }

func NewEventRepository(db *gorm.DB) *EventRepository { return &EventRepository{db: db} }

func (r *EventRepository) Append(ctx context.Context, e *eventDomain.Event) error {
	if e.EventID == "" {
		e.EventID = id.NewID32()
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepository) ListByLoan(ctx context.Context, loanID uint64) ([]eventDomain.Event, error) {
	var out []eventDomain.Event
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *EventRepository) ListUnpublished(ctx context.Context, limit int) ([]eventDomain.Event, error) {
	var out []eventDomain.Event
	q := r.db.WithContext(ctx).Where("published_at IS NULL").Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return out, q.Find(&out).Error
}

func (r *EventRepository) MarkPublished(ctx context.Context, ids []uint64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&eventDomain.Event{}).
		Where("id IN ?", ids).
		Update("published_at", at.UTC()).Error
}
