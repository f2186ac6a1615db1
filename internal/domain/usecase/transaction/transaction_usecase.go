package transaction

import (
	"context"
	"errors"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"github.com/cloudai/owner-console/internal/domain/usecase/cascade"
)

// ListLimit caps one page of the transaction list
const ListLimit = 200

// TransactionUseCase handles subscription payment review and confirmation
type TransactionUseCase struct {
	transactions persistence.TransactionRepository
	users        persistence.UserRepository
	uow          persistence.UnitOfWork
	cascade      cascade.Runner
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewTransactionUseCase creates a new TransactionUseCase
func NewTransactionUseCase(
	transactions persistence.TransactionRepository,
	users persistence.UserRepository,
	uow persistence.UnitOfWork,
	runner cascade.Runner,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *TransactionUseCase {
	return &TransactionUseCase{
		transactions: transactions,
		users:        users,
		uow:          uow,
		cascade:      runner,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ListedTransaction is one row of the payment review queue
type ListedTransaction struct {
	Transaction *entity.Transaction
	UserName    string
}

// List returns transactions in one status, newest first, with payer names.
func (t *TransactionUseCase) List(ctx context.Context, status string, limit int) ([]ListedTransaction, error) {
	if status == "" {
		status = string(entity.TransactionStatusPending)
	}
	if !entity.ValidTransactionStatus(status) {
		return nil, errs.ErrInvalidStatus
	}
	if limit <= 0 || limit > ListLimit {
		limit = ListLimit
	}

	rows, err := t.transactions.List(ctx, entity.TransactionStatus(status), limit)
	if err != nil {
		return nil, err
	}

	uids := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if row.UID == "" {
			continue
		}
		if _, dup := seen[row.UID]; dup {
			continue
		}
		seen[row.UID] = struct{}{}
		uids = append(uids, row.UID)
	}
	names := map[string]string{}
	if len(uids) > 0 {
		if resolved, err := t.users.NamesByUID(ctx, uids); err == nil {
			names = resolved
		}
	}

	out := make([]ListedTransaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, ListedTransaction{Transaction: row, UserName: names[row.UID]})
	}
	return out, nil
}

// ConfirmResult reports what a confirmation did
type ConfirmResult struct {
	Already         bool
	UpdatedServices int
}

// Confirm marks a pending payment successful and activates the plan. The
// transaction update and the profile update commit atomically; the cascade
// release afterwards is best effort because the payment must stay confirmed
// even when the sweep fails.
func (t *TransactionUseCase) Confirm(ctx context.Context, actorUID, id string) (*ConfirmResult, error) {
	if id == "" {
		return nil, errs.ErrMissingID
	}

	txn, err := t.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn.Confirmed() {
		return &ConfirmResult{Already: true}, nil
	}

	txCtx, err := t.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	now := t.timeProvider.Now()
	txRepo := t.uow.GetTransactionRepository(txCtx)
	if err := txRepo.Merge(txCtx, id, map[string]any{
		"status":      string(entity.TransactionStatusSuccess),
		"paid_at":     now,
		"approved_by": actorUID,
	}); err != nil {
		_ = t.uow.Rollback(txCtx)
		return nil, err
	}

	// Only the gate mode is cleared; a scheduled showAt or an
	// enforceAfterMonths override outlives the payment.
	userRepo := t.uow.GetUserRepository(txCtx)
	gate := &entity.PricingGate{}
	user, err := userRepo.GetByUID(txCtx, txn.UID)
	switch {
	case err == nil:
		if user.PricingGate != nil {
			gate = user.PricingGate
		}
	case errors.Is(err, errs.ErrUserNotFound):
		// Merge below creates the profile document
	default:
		_ = t.uow.Rollback(txCtx)
		return nil, err
	}
	gate.Mode = nil

	if err := userRepo.Merge(txCtx, txn.UID, map[string]any{
		"plan":         txn.PlanID,
		"pricing_gate": gate,
	}); err != nil {
		_ = t.uow.Rollback(txCtx)
		return nil, err
	}

	if err := t.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	result := &ConfirmResult{}
	count, err := t.cascade.Reapprove(ctx, txn.UID, actorUID)
	if err != nil {
		t.logger.Error("Payment confirmed but service release failed", map[string]any{
			"transactionId": id,
			"uid":           txn.UID,
			"error":         err.Error(),
		})
	} else {
		result.UpdatedServices = count
	}

	t.logger.Info("Transaction confirmed", map[string]any{
		"transactionId": id,
		"uid":           txn.UID,
		"plan":          txn.PlanID,
		"actor":         actorUID,
	})
	return result, nil
}
