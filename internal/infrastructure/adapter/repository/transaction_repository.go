package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{db: db, logger: logger}
}

func txnModelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:         m.ID,
		UID:        m.UID,
		PlanID:     m.PlanID,
		Amount:     m.Amount,
		Currency:   m.Currency,
		Provider:   m.Provider,
		Status:     entity.TransactionStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		PaidAt:     m.PaidAt,
		ApprovedBy: m.ApprovedBy,
	}
}

func (r *TransactionRepository) handleDatabaseError(operation string, err error, id string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"transaction_id": id,
		"error":          err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a transaction by document id
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var m model.Transaction
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting transaction", result.Error, id)
	}
	return txnModelToEntity(&m), nil
}

// List returns transactions in the given status, newest first
func (r *TransactionRepository) List(ctx context.Context, status entity.TransactionStatus, limit int) ([]*entity.Transaction, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaction{})
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []model.Transaction
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("listing transactions", err, "")
	}

	out := make([]*entity.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, txnModelToEntity(&rows[i]))
	}
	return out, nil
}

// Merge applies a partial field update to an existing transaction
func (r *TransactionRepository) Merge(ctx context.Context, id string, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return r.handleDatabaseError("updating transaction", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
