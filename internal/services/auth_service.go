package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/citywatch/backend/internal/auth"
	"github.com/citywatch/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AccountRepository is the interface that wraps methods for account table data access
type AccountRepository interface {
	// Method Create inserts a new account into the database.
	//
	// "account" parameter is used to create a new account.
	//
	// If some error occurs during account creation, the error will be returned.
	Create(ctx context.Context, account *models.Account) error
	// Method GetByEmail retrieves an account of the given role by email.
	//
	// If an account with such email does not exist, the error will be returned together with "nil" value.
	GetByEmail(ctx context.Context, role models.Role, email string) (*models.Account, error)
	// Method GetByID retrieves an account by ID.
	//
	// If an account with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, accountID int) (*models.Account, error)
	// Method ExistsByEmail checks if an account of the given role exists with such email.
	ExistsByEmail(ctx context.Context, role models.Role, email string) (bool, error)
	// Method ExistsByBadgeNumber checks if a police account exists with such badge number.
	ExistsByBadgeNumber(ctx context.Context, badgeNumber string) (bool, error)
}

// authService implements signup and login for citizen and police accounts
type authService struct {
	accountRepo    AccountRepository
	tokenGenerator *auth.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(accountRepo AccountRepository, tokenGenerator *auth.TokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		accountRepo:    accountRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// phoneRegex validates a 10-digit phone number
var phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

// SignupCitizen validates and creates a citizen account
func (s *authService) SignupCitizen(ctx context.Context, req *models.CitizenSignupRequest) error {
	normalizedEmail, err := s.checkCitizenCredentials(ctx, req)
	if err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Role:         models.RoleCitizen,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        normalizedEmail,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(passwordHash),
	}

	return s.accountRepo.Create(ctx, account)
}

// SignupPolice validates and creates a police account.
// Police accounts start unverified; verification is handled by a separate admin flow.
func (s *authService) SignupPolice(ctx context.Context, req *models.PoliceSignupRequest) error {
	normalizedEmail, err := s.checkPoliceCredentials(ctx, req)
	if err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Role:         models.RolePolice,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        normalizedEmail,
		BadgeNumber:  strings.TrimSpace(req.BadgeNumber),
		Department:   strings.TrimSpace(req.Department),
		Rank:         strings.TrimSpace(req.Rank),
		PasswordHash: string(passwordHash),
		Verified:     false,
	}

	return s.accountRepo.Create(ctx, account)
}

// Login authenticates an account of the given kind and issues a bearer token.
// Unknown email and wrong password yield the same error to resist account enumeration.
func (s *authService) Login(ctx context.Context, role models.Role, req *models.LoginRequest) (string, *models.Account, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	account, err := s.accountRepo.GetByEmail(ctx, role, email)
	if err != nil {
		// Only a missing account counts as bad credentials; a repository
		// failure must surface as a server error, not a rejected login.
		if strings.Contains(err.Error(), "not found") {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to get account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(account.ID, int(account.Role))
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, account, nil
}

// checkCitizenCredentials combines all validation for citizen signup
//
// The checks are independent, so they run in parallel.
func (s *authService) checkCitizenCredentials(ctx context.Context, req *models.CitizenSignupRequest) (string, error) {
	validationErrors := make(chan error, 3)
	normalizedEmail := strings.TrimSpace(strings.ToLower(req.Email))

	// Validate email format and check its uniqueness among citizen accounts
	go func() {
		if !emailRegex.MatchString(normalizedEmail) {
			validationErrors <- fmt.Errorf("%w: invalid email format", ErrValidation)
			return
		}
		exists, err := s.accountRepo.ExistsByEmail(ctx, models.RoleCitizen, normalizedEmail)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check email: %w", err)
			return
		}
		if exists {
			validationErrors <- fmt.Errorf("%w: email already registered", ErrDuplicateAccount)
			return
		}
		validationErrors <- nil
	}()

	// Validate phone number format
	go func() {
		if !phoneRegex.MatchString(req.PhoneNumber) {
			validationErrors <- fmt.Errorf("%w: phone number must be 10 digits", ErrValidation)
			return
		}
		validationErrors <- nil
	}()

	// Validate required fields
	go func() {
		if strings.TrimSpace(req.FullName) == "" {
			validationErrors <- fmt.Errorf("%w: full name is required", ErrValidation)
			return
		}
		if req.Password == "" {
			validationErrors <- fmt.Errorf("%w: password is required", ErrValidation)
			return
		}
		validationErrors <- nil
	}()

	for i := 0; i < 3; i++ {
		if err := <-validationErrors; err != nil {
			return "", err
		}
	}

	return normalizedEmail, nil
}

// checkPoliceCredentials combines all validation for police signup
//
// The checks are independent, so they run in parallel.
func (s *authService) checkPoliceCredentials(ctx context.Context, req *models.PoliceSignupRequest) (string, error) {
	validationErrors := make(chan error, 3)
	normalizedEmail := strings.TrimSpace(strings.ToLower(req.Email))
	normalizedBadge := strings.TrimSpace(req.BadgeNumber)

	// Validate email format and check its uniqueness among police accounts
	go func() {
		if !emailRegex.MatchString(normalizedEmail) {
			validationErrors <- fmt.Errorf("%w: invalid email format", ErrValidation)
			return
		}
		exists, err := s.accountRepo.ExistsByEmail(ctx, models.RolePolice, normalizedEmail)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check email: %w", err)
			return
		}
		if exists {
			validationErrors <- fmt.Errorf("%w: email already registered", ErrDuplicateAccount)
			return
		}
		validationErrors <- nil
	}()

	// Validate badge number presence and uniqueness
	go func() {
		if normalizedBadge == "" {
			validationErrors <- fmt.Errorf("%w: badge number is required", ErrValidation)
			return
		}
		exists, err := s.accountRepo.ExistsByBadgeNumber(ctx, normalizedBadge)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check badge number: %w", err)
			return
		}
		if exists {
			validationErrors <- fmt.Errorf("%w: badge number already registered", ErrDuplicateAccount)
			return
		}
		validationErrors <- nil
	}()

	// Validate required fields
	go func() {
		if strings.TrimSpace(req.FullName) == "" {
			validationErrors <- fmt.Errorf("%w: full name is required", ErrValidation)
			return
		}
		if req.Password == "" {
			validationErrors <- fmt.Errorf("%w: password is required", ErrValidation)
			return
		}
		validationErrors <- nil
	}()

	for i := 0; i < 3; i++ {
		if err := <-validationErrors; err != nil {
			return "", err
		}
	}

	return normalizedEmail, nil
}
