package main

import (
	"context"
	"errors"
	"testing"

	"github.com/citywatch/backend/internal/models"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// mockTipRepository is a mock implementation of TipRepository
type mockTipRepository struct {
	tip *models.Tip
	err error
}

func (m *mockTipRepository) GetByID(ctx context.Context, tipID int) (*models.Tip, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tip, nil
}

// mockAccountRepository is a mock implementation of AccountRepository
type mockAccountRepository struct {
	account *models.Account
	emails  []string
	err     error
}

func (m *mockAccountRepository) GetByID(ctx context.Context, accountID int) (*models.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.account, nil
}

func (m *mockAccountRepository) ListPoliceEmails(ctx context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.emails, nil
}

func newTestWorker(tipRepo TipRepository, accountRepo AccountRepository) *Worker {
	return NewWorker(zap.NewNop(), tipRepo, accountRepo, "localhost", 587, "", "", "alerts@citywatch.app")
}

func TestWorker_HandleSOSAlert_BadPayload(t *testing.T) {
	w := newTestWorker(&mockTipRepository{}, &mockAccountRepository{})

	err := w.HandleSOSAlert(context.Background(), asynq.NewTask("sos:alert", []byte("not-a-number")))

	assert.Error(t, err)
}

func TestWorker_HandleSOSAlert_TipDeleted(t *testing.T) {
	w := newTestWorker(&mockTipRepository{err: errors.New("tip not found")}, &mockAccountRepository{})

	err := w.HandleSOSAlert(context.Background(), asynq.NewTask("sos:alert", []byte("4")))

	// A deleted tip is not an error, there is simply nothing to alert about
	assert.NoError(t, err)
}

func TestWorker_HandleSOSAlert_RepositoryError(t *testing.T) {
	w := newTestWorker(&mockTipRepository{err: errors.New("database error")}, &mockAccountRepository{})

	err := w.HandleSOSAlert(context.Background(), asynq.NewTask("sos:alert", []byte("4")))

	assert.Error(t, err)
}

func TestWorker_HandleSOSAlert_NoPoliceAccounts(t *testing.T) {
	accountID := 42
	tip := &models.Tip{
		ID:        4,
		AccountID: &accountID,
		Time:      "2025-06-01 22:15",
		Location:  "12.34, 56.78",
		Kind:      models.TipKindSOS,
	}
	accountRepo := &mockAccountRepository{account: &models.Account{ID: 42, FullName: "Jane Doe"}}
	w := newTestWorker(&mockTipRepository{tip: tip}, accountRepo)

	err := w.HandleSOSAlert(context.Background(), asynq.NewTask("sos:alert", []byte("4")))

	// No recipients means nothing to send and nothing to retry
	assert.NoError(t, err)
}
