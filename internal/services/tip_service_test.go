package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/citywatch/backend/internal/models"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockTipRepository is a mock implementation of TipRepository
type mockTipRepository struct {
	tips          []models.TipListItem
	err           error
	updateErr     error
	created       *models.Tip
	updatedTipID  int
	updatedStatus models.TipStatus
}

func (m *mockTipRepository) Create(ctx context.Context, tip *models.Tip) error {
	if m.err != nil {
		return m.err
	}
	tip.ID = 10
	m.created = tip
	return nil
}

func (m *mockTipRepository) ListByAccount(ctx context.Context, accountID int) ([]models.TipListItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tips, nil
}

func (m *mockTipRepository) UpdateStatus(ctx context.Context, tipID int, status models.TipStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedTipID = tipID
	m.updatedStatus = status
	return nil
}

// mockEnqueuer is a mock implementation of TaskEnqueuer
type mockEnqueuer struct {
	task *asynq.Task
	opts []asynq.Option
	err  error
}

func (m *mockEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	m.task = task
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	return &asynq.TaskInfo{}, nil
}

func validTipRequest() *models.SubmitTipRequest {
	return &models.SubmitTipRequest{
		Name:        "Jane Doe",
		Phone:       "5551234567",
		Time:        "2025-06-01 22:15",
		Location:    "5th and Main",
		Title:       "Vandalism",
		Description: "Broken shop window",
	}
}

func TestTipService_SubmitAnonymous(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*models.SubmitTipRequest)
		repo        *mockTipRepository
		expectedErr error
	}{
		{
			name:   "success",
			mutate: func(r *models.SubmitTipRequest) {},
			repo:   &mockTipRepository{},
		},
		{
			name:   "media is optional",
			mutate: func(r *models.SubmitTipRequest) { r.Media = "" },
			repo:   &mockTipRepository{},
		},
		{
			name:        "missing name",
			mutate:      func(r *models.SubmitTipRequest) { r.Name = "  " },
			repo:        &mockTipRepository{},
			expectedErr: ErrValidation,
		},
		{
			name:        "missing description",
			mutate:      func(r *models.SubmitTipRequest) { r.Description = "" },
			repo:        &mockTipRepository{},
			expectedErr: ErrValidation,
		},
		{
			name:        "bad phone number",
			mutate:      func(r *models.SubmitTipRequest) { r.Phone = "555-1234" },
			repo:        &mockTipRepository{},
			expectedErr: ErrValidation,
		},
		{
			name:   "repository error",
			mutate: func(r *models.SubmitTipRequest) {},
			repo:   &mockTipRepository{err: errors.New("database error")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTipRequest()
			tt.mutate(req)

			enqueuer := &mockEnqueuer{}
			svc := NewTipService(tt.repo, enqueuer, zap.NewNop())

			err := svc.SubmitAnonymous(context.Background(), req)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, tt.repo.created)
				return
			}
			if tt.repo.err != nil {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, tt.repo.created)
			assert.Equal(t, models.TipKindRegular, tt.repo.created.Kind)
			assert.Equal(t, models.TipStatusPending, tt.repo.created.Status)
			assert.Nil(t, tt.repo.created.AccountID)
			// Anonymous tips never touch the alert queue
			assert.Nil(t, enqueuer.task)
		})
	}
}

func TestTipService_SubmitSOS(t *testing.T) {
	t.Run("stores tip and enqueues alert", func(t *testing.T) {
		repo := &mockTipRepository{}
		enqueuer := &mockEnqueuer{}
		svc := NewTipService(repo, enqueuer, zap.NewNop())

		req := &models.SubmitSOSRequest{
			Time:      "2025-06-01 22:15",
			Latitude:  12.34,
			Longitude: 56.78,
		}
		err := svc.SubmitSOS(context.Background(), 42, req)

		require.NoError(t, err)
		require.NotNil(t, repo.created)
		require.NotNil(t, repo.created.AccountID)
		assert.Equal(t, 42, *repo.created.AccountID)
		assert.Equal(t, models.TipKindSOS, repo.created.Kind)
		assert.Equal(t, models.TipStatusPending, repo.created.Status)
		assert.Equal(t, "12.34, 56.78", repo.created.Location)

		require.NotNil(t, enqueuer.task)
		assert.Equal(t, TaskSOSAlert, enqueuer.task.Type())
		assert.Equal(t, fmt.Sprintf("%d", repo.created.ID), string(enqueuer.task.Payload()))
	})

	t.Run("missing time", func(t *testing.T) {
		repo := &mockTipRepository{}
		svc := NewTipService(repo, &mockEnqueuer{}, zap.NewNop())

		err := svc.SubmitSOS(context.Background(), 42, &models.SubmitSOSRequest{})

		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, repo.created)
	})

	t.Run("enqueue failure does not fail the submission", func(t *testing.T) {
		repo := &mockTipRepository{}
		enqueuer := &mockEnqueuer{err: errors.New("redis down")}
		svc := NewTipService(repo, enqueuer, zap.NewNop())

		req := &models.SubmitSOSRequest{
			Time:      "2025-06-01 22:15",
			Latitude:  12.34,
			Longitude: 56.78,
		}
		err := svc.SubmitSOS(context.Background(), 42, req)

		// The tip is stored; losing the alert must not lose the record
		assert.NoError(t, err)
		assert.NotNil(t, repo.created)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &mockTipRepository{err: errors.New("database error")}
		enqueuer := &mockEnqueuer{}
		svc := NewTipService(repo, enqueuer, zap.NewNop())

		req := &models.SubmitSOSRequest{
			Time:      "2025-06-01 22:15",
			Latitude:  12.34,
			Longitude: 56.78,
		}
		err := svc.SubmitSOS(context.Background(), 42, req)

		assert.Error(t, err)
		assert.Nil(t, enqueuer.task)
	})
}

func TestTipService_ListByAccount(t *testing.T) {
	expected := []models.TipListItem{
		{ID: 4, Time: "2025-06-01 22:15", Location: "12.34, 56.78", Status: "Pending"},
	}
	repo := &mockTipRepository{tips: expected}
	svc := NewTipService(repo, &mockEnqueuer{}, zap.NewNop())

	tips, err := svc.ListByAccount(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, expected, tips)
}

func TestTipService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name        string
		tipID       int
		status      string
		repo        *mockTipRepository
		expectedErr error
	}{
		{
			name:   "success",
			tipID:  3,
			status: "Solved",
			repo:   &mockTipRepository{},
		},
		{
			name:        "unknown status",
			tipID:       3,
			status:      "Closed",
			repo:        &mockTipRepository{},
			expectedErr: ErrValidation,
		},
		{
			name:        "tip not found",
			tipID:       999,
			status:      "Solved",
			repo:        &mockTipRepository{updateErr: errors.New("tip not found")},
			expectedErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTipService(tt.repo, &mockEnqueuer{}, zap.NewNop())

			err := svc.UpdateStatus(context.Background(), tt.tipID, tt.status)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.tipID, tt.repo.updatedTipID)
			assert.Equal(t, models.TipStatusSolved, tt.repo.updatedStatus)
		})
	}
}
