package cascade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/logger"
	coremocks "github.com/cloudai/owner-console/mocks/port/core"
	persistencemocks "github.com/cloudai/owner-console/mocks/port/persistence"
)

func newTestEngine(repo *persistencemocks.MockServiceRepository, committer *persistencemocks.MockChunkCommitter, now time.Time) *Engine {
	tp := new(coremocks.MockTimeProvider)
	tp.On("Now").Return(now).Maybe()
	writer := NewBatchWriter(committer, DefaultBatchLimit, logger.NewNoopLogger())
	return NewEngine(repo, writer, tp, logger.NewNoopLogger(), DefaultQueryLimit)
}

func approvedService(id, provider string) *entity.Service {
	return &entity.Service{ID: id, ProviderID: provider, Status: entity.ServiceStatusApproved}
}

func pendingService(id, provider string, demoted bool) *entity.Service {
	return &entity.Service{ID: id, ProviderID: provider, Status: entity.ServiceStatusPending, DemotedForLock: demoted}
}

func TestEngine_Demote(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("stages demotion fields for every approved service", func(t *testing.T) {
		repo := new(persistencemocks.MockServiceRepository)
		committer := new(persistencemocks.MockChunkCommitter)
		repo.On("ListCascadeCandidates", ctx, "prov-1", entity.ServiceStatusApproved, false, DefaultQueryLimit).
			Return([]*entity.Service{approvedService("a", "prov-1"), approvedService("b", "prov-1")}, nil)

		var staged []persistence.Mutation
		committer.On("CommitChunk", ctx, mock.Anything).Run(func(args mock.Arguments) {
			staged = append(staged, args.Get(1).([]persistence.Mutation)...)
		}).Return(nil)

		engine := newTestEngine(repo, committer, fixedTime)
		count, err := engine.Demote(ctx, "prov-1")

		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Len(t, staged, 2)
		for _, mu := range staged {
			assert.Equal(t, persistence.CollectionServices, mu.Collection)
			assert.Equal(t, persistence.OpUpdate, mu.Op)
			assert.Equal(t, "pending", mu.Fields["status"])
			assert.Equal(t, true, mu.Fields["demoted_for_lock"])
			assert.Nil(t, mu.Fields["approved_at"])
			assert.Nil(t, mu.Fields["approved_by"])
		}
		repo.AssertExpectations(t)
		committer.AssertExpectations(t)
	})

	t.Run("no approved services means no commit", func(t *testing.T) {
		repo := new(persistencemocks.MockServiceRepository)
		committer := new(persistencemocks.MockChunkCommitter)
		repo.On("ListCascadeCandidates", ctx, "prov-1", entity.ServiceStatusApproved, false, DefaultQueryLimit).
			Return([]*entity.Service{}, nil)

		engine := newTestEngine(repo, committer, fixedTime)
		count, err := engine.Demote(ctx, "prov-1")

		assert.NoError(t, err)
		assert.Equal(t, 0, count)
		committer.AssertNotCalled(t, "CommitChunk", mock.Anything, mock.Anything)
	})

	t.Run("query failure is wrapped as a cascade error", func(t *testing.T) {
		repo := new(persistencemocks.MockServiceRepository)
		committer := new(persistencemocks.MockChunkCommitter)
		boom := errors.New("query timeout")
		repo.On("ListCascadeCandidates", ctx, "prov-1", entity.ServiceStatusApproved, false, DefaultQueryLimit).
			Return(nil, boom)

		engine := newTestEngine(repo, committer, fixedTime)
		count, err := engine.Demote(ctx, "prov-1")

		assert.Equal(t, 0, count)
		var cascadeErr *errs.CascadeError
		assert.ErrorAs(t, err, &cascadeErr)
		assert.Equal(t, "demote", cascadeErr.Direction)
		assert.ErrorIs(t, err, boom)
	})
}

func TestEngine_Reapprove(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("restores only marker-bearing pending services", func(t *testing.T) {
		repo := new(persistencemocks.MockServiceRepository)
		committer := new(persistencemocks.MockChunkCommitter)
		repo.On("ListCascadeCandidates", ctx, "prov-1", entity.ServiceStatusPending, true, DefaultQueryLimit).
			Return([]*entity.Service{
				pendingService("a", "prov-1", true),
				pendingService("b", "prov-1", false),
				pendingService("c", "prov-1", true),
			}, nil)

		var staged []persistence.Mutation
		committer.On("CommitChunk", ctx, mock.Anything).Run(func(args mock.Arguments) {
			staged = append(staged, args.Get(1).([]persistence.Mutation)...)
		}).Return(nil)

		engine := newTestEngine(repo, committer, fixedTime)
		count, err := engine.Reapprove(ctx, "prov-1", "actor-9")

		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Len(t, staged, 2)
		ids := []string{staged[0].ID, staged[1].ID}
		assert.ElementsMatch(t, []string{"a", "c"}, ids)
		for _, mu := range staged {
			assert.Equal(t, "approved", mu.Fields["status"])
			assert.Equal(t, false, mu.Fields["demoted_for_lock"])
			assert.Equal(t, fixedTime, mu.Fields["approved_at"])
			assert.Equal(t, "actor-9", mu.Fields["approved_by"])
		}
	})

	t.Run("nothing marked means no commit", func(t *testing.T) {
		repo := new(persistencemocks.MockServiceRepository)
		committer := new(persistencemocks.MockChunkCommitter)
		repo.On("ListCascadeCandidates", ctx, "prov-1", entity.ServiceStatusPending, true, DefaultQueryLimit).
			Return([]*entity.Service{pendingService("b", "prov-1", false)}, nil)

		engine := newTestEngine(repo, committer, fixedTime)
		count, err := engine.Reapprove(ctx, "prov-1", "actor-9")

		assert.NoError(t, err)
		assert.Equal(t, 0, count)
		committer.AssertNotCalled(t, "CommitChunk", mock.Anything, mock.Anything)
	})
}

func TestEngine_Paging(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	newPagedEngine := func(repo *persistencemocks.MockServiceRepository, committer *persistencemocks.MockChunkCommitter, limit int) *Engine {
		tp := new(coremocks.MockTimeProvider)
		tp.On("Now").Return(fixedTime).Maybe()
		writer := NewBatchWriter(committer, DefaultBatchLimit, logger.NewNoopLogger())
		return NewEngine(repo, writer, tp, logger.NewNoopLogger(), limit)
	}

	t.Run("global demote re-queries until the page comes back short", func(t *testing.T) {
		repo := new(persistencemocks.MockServiceRepository)
		committer := new(persistencemocks.MockChunkCommitter)
		repo.On("ListCascadeCandidates", ctx, "", entity.ServiceStatusApproved, false, 2).
			Return([]*entity.Service{approvedService("a", "prov-1"), approvedService("b", "prov-2")}, nil).Once()
		repo.On("ListCascadeCandidates", ctx, "", entity.ServiceStatusApproved, false, 2).
			Return([]*entity.Service{approvedService("c", "prov-3")}, nil).Once()

		var staged []persistence.Mutation
		committer.On("CommitChunk", ctx, mock.Anything).Run(func(args mock.Arguments) {
			staged = append(staged, args.Get(1).([]persistence.Mutation)...)
		}).Return(nil)

		engine := newPagedEngine(repo, committer, 2)
		count, err := engine.Demote(ctx, "")

		assert.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.Len(t, staged, 3)
		repo.AssertNumberOfCalls(t, "ListCascadeCandidates", 2)
	})

	t.Run("global reapprove re-queries until the page comes back short", func(t *testing.T) {
		repo := new(persistencemocks.MockServiceRepository)
		committer := new(persistencemocks.MockChunkCommitter)
		repo.On("ListCascadeCandidates", ctx, "", entity.ServiceStatusPending, true, 2).
			Return([]*entity.Service{pendingService("a", "prov-1", true), pendingService("b", "prov-2", true)}, nil).Once()
		repo.On("ListCascadeCandidates", ctx, "", entity.ServiceStatusPending, true, 2).
			Return([]*entity.Service{}, nil).Once()
		committer.On("CommitChunk", ctx, mock.Anything).Return(nil)

		engine := newPagedEngine(repo, committer, 2)
		count, err := engine.Reapprove(ctx, "", "actor-9")

		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		repo.AssertNumberOfCalls(t, "ListCascadeCandidates", 2)
	})

	t.Run("scoped demote stops after a single full page", func(t *testing.T) {
		repo := new(persistencemocks.MockServiceRepository)
		committer := new(persistencemocks.MockChunkCommitter)
		repo.On("ListCascadeCandidates", ctx, "prov-1", entity.ServiceStatusApproved, false, 2).
			Return([]*entity.Service{approvedService("a", "prov-1"), approvedService("b", "prov-1")}, nil).Once()
		committer.On("CommitChunk", ctx, mock.Anything).Return(nil)

		engine := newPagedEngine(repo, committer, 2)
		count, err := engine.Demote(ctx, "prov-1")

		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		repo.AssertNumberOfCalls(t, "ListCascadeCandidates", 1)
	})
}

func TestEngine_Apply(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("none edge issues no query and no mutation", func(t *testing.T) {
		repo := new(persistencemocks.MockServiceRepository)
		committer := new(persistencemocks.MockChunkCommitter)

		engine := newTestEngine(repo, committer, fixedTime)
		count, err := engine.Apply(ctx, EdgeNone, "prov-1", "actor-9")

		assert.NoError(t, err)
		assert.Equal(t, 0, count)
		repo.AssertNotCalled(t, "ListCascadeCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		committer.AssertNotCalled(t, "CommitChunk", mock.Anything, mock.Anything)
	})

	t.Run("rising edge demotes", func(t *testing.T) {
		repo := new(persistencemocks.MockServiceRepository)
		committer := new(persistencemocks.MockChunkCommitter)
		repo.On("ListCascadeCandidates", ctx, "", entity.ServiceStatusApproved, false, DefaultQueryLimit).
			Return([]*entity.Service{approvedService("a", "prov-1")}, nil)
		committer.On("CommitChunk", ctx, mock.Anything).Return(nil)

		engine := newTestEngine(repo, committer, fixedTime)
		count, err := engine.Apply(ctx, EdgeRising, "", "actor-9")

		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("falling edge reapproves", func(t *testing.T) {
		repo := new(persistencemocks.MockServiceRepository)
		committer := new(persistencemocks.MockChunkCommitter)
		repo.On("ListCascadeCandidates", ctx, "", entity.ServiceStatusPending, true, DefaultQueryLimit).
			Return([]*entity.Service{pendingService("a", "prov-1", true)}, nil)
		committer.On("CommitChunk", ctx, mock.Anything).Return(nil)

		engine := newTestEngine(repo, committer, fixedTime)
		count, err := engine.Apply(ctx, EdgeFalling, "", "actor-9")

		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
