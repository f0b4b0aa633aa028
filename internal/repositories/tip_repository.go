package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/citywatch/backend/internal/models"
)

// tipRepository implements tip data access over the tips table
type tipRepository struct {
	db *sql.DB
}

// NewTipRepository creates a new tip repository
func NewTipRepository(db *sql.DB) *tipRepository {
	return &tipRepository{db: db}
}

// Create inserts a new tip into the database.
// Resubmitting identical fields creates a new distinct record each call.
func (r *tipRepository) Create(ctx context.Context, tip *models.Tip) error {
	query := `
		INSERT INTO tips (account_id, name, phone, time, location, title, description, media, kind, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		tip.AccountID,
		nullString(tip.Name),
		nullString(tip.Phone),
		tip.Time,
		tip.Location,
		tip.Title,
		tip.Description,
		nullString(tip.Media),
		tip.Kind,
		tip.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create tip: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	tip.ID = int(id)
	return nil
}

// GetByID retrieves a tip by ID
func (r *tipRepository) GetByID(ctx context.Context, tipID int) (*models.Tip, error) {
	query := `
		SELECT id, account_id, name, phone, time, location, title, description, media, kind, status, created_at
		FROM tips
		WHERE id = ?
		LIMIT 1
	`

	tip := &models.Tip{}
	var accountID sql.NullInt64
	var name, phone, media sql.NullString
	err := r.db.QueryRowContext(ctx, query, tipID).Scan(
		&tip.ID,
		&accountID,
		&name,
		&phone,
		&tip.Time,
		&tip.Location,
		&tip.Title,
		&tip.Description,
		&media,
		&tip.Kind,
		&tip.Status,
		&tip.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tip not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tip by id: %w", err)
	}

	if accountID.Valid {
		id := int(accountID.Int64)
		tip.AccountID = &id
	}
	tip.Name = name.String
	tip.Phone = phone.String
	tip.Media = media.String

	return tip, nil
}

// ListByAccount retrieves the tips belonging to an account, newest first.
// Only the non-identifying projection is returned.
func (r *tipRepository) ListByAccount(ctx context.Context, accountID int) ([]models.TipListItem, error) {
	query := `
		SELECT id, time, location, status
		FROM tips
		WHERE account_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tips: %w", err)
	}
	defer rows.Close()

	var tips []models.TipListItem
	for rows.Next() {
		var item models.TipListItem
		var status models.TipStatus
		if err := rows.Scan(&item.ID, &item.Time, &item.Location, &status); err != nil {
			return nil, fmt.Errorf("failed to scan tip: %w", err)
		}
		item.Status = status.String()
		tips = append(tips, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tips: %w", err)
	}

	return tips, nil
}

// UpdateStatus updates the status of a tip
func (r *tipRepository) UpdateStatus(ctx context.Context, tipID int, status models.TipStatus) error {
	query := `UPDATE tips SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, tipID)
	if err != nil {
		return fmt.Errorf("failed to update tip status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("tip not found")
	}

	return nil
}
