package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/citywatch/backend/internal/models"
	"go.uber.org/zap"
)

// accountService implements profile retrieval and citizen directory access
type accountService struct {
	accountRepo AccountRepository
	lister      CitizenLister
	logger      *zap.Logger
}

// CitizenLister is the interface that wraps the citizen directory query
type CitizenLister interface {
	// Method ListCitizens retrieves all citizen accounts, newest first.
	ListCitizens(ctx context.Context) ([]models.Account, error)
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo AccountRepository, lister CitizenLister, logger *zap.Logger) *accountService {
	return &accountService{
		accountRepo: accountRepo,
		lister:      lister,
		logger:      logger,
	}
}

// GetProfile retrieves the account behind an authenticated request
func (s *accountService) GetProfile(ctx context.Context, accountID int) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("%w: account %d", ErrNotFound, accountID)
		}
		return nil, err
	}
	return account, nil
}

// ListCitizens retrieves the citizen directory for police accounts
func (s *accountService) ListCitizens(ctx context.Context) ([]models.Account, error) {
	return s.lister.ListCitizens(ctx)
}
