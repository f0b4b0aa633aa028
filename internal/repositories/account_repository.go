package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/citywatch/backend/internal/models"
)

// accountRepository implements account data access over the accounts table
type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *sql.DB) *accountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account into the database
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (role, full_name, email, phone_number, badge_number, department, officer_rank, password_hash, verified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		account.Role,
		account.FullName,
		account.Email,
		nullString(account.PhoneNumber),
		nullString(account.BadgeNumber),
		nullString(account.Department),
		nullString(account.Rank),
		account.PasswordHash,
		account.Verified,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	account.ID = int(id)
	return nil
}

// GetByEmail retrieves an account of the given role by email
func (r *accountRepository) GetByEmail(ctx context.Context, role models.Role, email string) (*models.Account, error) {
	query := `
		SELECT id, role, full_name, email, phone_number, badge_number, department, officer_rank, password_hash, verified, created_at
		FROM accounts
		WHERE role = ? AND email = ?
		LIMIT 1
	`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, role, email))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

// GetByID retrieves an account by ID
func (r *accountRepository) GetByID(ctx context.Context, accountID int) (*models.Account, error) {
	query := `
		SELECT id, role, full_name, email, phone_number, badge_number, department, officer_rank, password_hash, verified, created_at
		FROM accounts
		WHERE id = ?
		LIMIT 1
	`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, accountID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

// scanAccount scans a full account row, mapping nullable columns
func scanAccount(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	var phoneNumber, badgeNumber, department, rank sql.NullString
	err := row.Scan(
		&account.ID,
		&account.Role,
		&account.FullName,
		&account.Email,
		&phoneNumber,
		&badgeNumber,
		&department,
		&rank,
		&account.PasswordHash,
		&account.Verified,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.PhoneNumber = phoneNumber.String
	account.BadgeNumber = badgeNumber.String
	account.Department = department.String
	account.Rank = rank.String
	return account, nil
}

// ExistsByEmail checks if an account of the given role exists with the given email
func (r *accountRepository) ExistsByEmail(ctx context.Context, role models.Role, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM accounts WHERE role = ? AND email = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, role, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// ExistsByBadgeNumber checks if a police account exists with the given badge number
func (r *accountRepository) ExistsByBadgeNumber(ctx context.Context, badgeNumber string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM accounts WHERE badge_number = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, badgeNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check badge number existence: %w", err)
	}

	return exists, nil
}

// ListCitizens retrieves all citizen accounts, newest first
func (r *accountRepository) ListCitizens(ctx context.Context) ([]models.Account, error) {
	query := `
		SELECT id, full_name, email, phone_number, created_at
		FROM accounts
		WHERE role = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, models.RoleCitizen)
	if err != nil {
		return nil, fmt.Errorf("failed to list citizens: %w", err)
	}
	defer rows.Close()

	var citizens []models.Account
	for rows.Next() {
		account := models.Account{Role: models.RoleCitizen}
		var phoneNumber sql.NullString
		if err := rows.Scan(
			&account.ID,
			&account.FullName,
			&account.Email,
			&phoneNumber,
			&account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan citizen: %w", err)
		}
		account.PhoneNumber = phoneNumber.String
		citizens = append(citizens, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate citizens: %w", err)
	}

	return citizens, nil
}

// ListPoliceEmails retrieves the email addresses of all police accounts
func (r *accountRepository) ListPoliceEmails(ctx context.Context) ([]string, error) {
	query := `SELECT email FROM accounts WHERE role = ?`

	rows, err := r.db.QueryContext(ctx, query, models.RolePolice)
	if err != nil {
		return nil, fmt.Errorf("failed to list police emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan police email: %w", err)
		}
		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate police emails: %w", err)
	}

	return emails, nil
}
