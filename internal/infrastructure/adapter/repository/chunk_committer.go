package repository

import (
	"context"
	"fmt"

	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"gorm.io/gorm"
)

// committerTables maps mutation collection names to their primary key column.
// Staging against an unlisted collection is a programming error.
var committerTables = map[string]string{
	persistence.CollectionServices:      "id",
	persistence.CollectionSaleItems:     "id",
	persistence.CollectionUsers:         "uid",
	persistence.CollectionServiceEvents: "id",
}

// ChunkCommitter applies one chunk of staged mutations inside a single
// database transaction. The batch writer above it owns chunk sizing; this
// type only guarantees that a chunk lands all-or-nothing.
type ChunkCommitter struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewChunkCommitter creates a new ChunkCommitter instance
func NewChunkCommitter(db *gorm.DB, logger coreport.Logger) *ChunkCommitter {
	return &ChunkCommitter{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// CommitChunk applies the mutations as one transaction
func (c *ChunkCommitter) CommitChunk(ctx context.Context, muts []persistence.Mutation) error {
	if len(muts) == 0 {
		return nil
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range muts {
			if err := c.applyMutation(tx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.logger.Error("Chunk commit failed", map[string]any{
			"mutations": len(muts),
			"error":     err.Error(),
		})
		if c.errorClassifier.IsConnectionError(err) {
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}
		return err
	}

	c.logger.Debug("Chunk committed", map[string]any{
		"mutations": len(muts),
	})
	return nil
}

func (c *ChunkCommitter) applyMutation(tx *gorm.DB, m persistence.Mutation) error {
	pk, ok := committerTables[m.Collection]
	if !ok {
		return fmt.Errorf("%w: unknown mutation collection %q", errs.ErrInternalServer, m.Collection)
	}

	switch m.Op {
	case persistence.OpUpdate:
		fields, err := normalizeWriteFields(m.Fields)
		if err != nil {
			return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
		}
		// Rows deleted between staging and commit are skipped, not failed
		return tx.Table(m.Collection).
			Where(pk+" = ?", m.ID).
			Updates(fields).Error

	case persistence.OpInsert:
		fields, err := normalizeWriteFields(m.Fields)
		if err != nil {
			return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
		}
		row := make(map[string]any, len(fields)+1)
		for k, v := range fields {
			row[k] = v
		}
		row[pk] = m.ID
		return tx.Table(m.Collection).Create(row).Error

	case persistence.OpDelete:
		return tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", m.Collection, pk), m.ID).Error

	default:
		return fmt.Errorf("%w: unknown mutation op %d", errs.ErrInternalServer, m.Op)
	}
}
