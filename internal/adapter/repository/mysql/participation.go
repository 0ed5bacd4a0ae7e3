package mysql

import (
	"context"

	participationDomain "nft-lending-backend/internal/domain/participation"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

type ParticipationRepository struct{ db *gorm.DB }

func NewParticipationRepository(db *gorm.DB) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

// Tx binds a copy of the repo to one transaction.
func (r *ParticipationRepository) Tx(ctx context.Context, fn func(repo *ParticipationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ParticipationRepository{db: tx})
	})
}

func (r *ParticipationRepository) Create(ctx context.Context, p *participationDomain.Participation) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ParticipationRepository) Save(ctx context.Context, p *participationDomain.Participation) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes the row outright; withdrawn or claimed entries never linger at zero.
func (r *ParticipationRepository) Delete(ctx context.Context, p *participationDomain.Participation) error {
	return r.db.WithContext(ctx).Delete(&participationDomain.Participation{}, p.ID).Error
}

func (r *ParticipationRepository) ListByLoan(ctx context.Context, loanID uint64) ([]participationDomain.Participation, error) {
	var out []participationDomain.Participation
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ParticipationRepository) GetByLoanAndLender(ctx context.Context, loanID uint64, lender common.Address) (*participationDomain.Participation, error) {
	var out participationDomain.Participation
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND lender = ?", loanID, lender).
		First(&out)
	return &out, res.Error
}
