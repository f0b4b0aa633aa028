package main

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/citywatch/backend/internal/models"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// TipRepository defines the interface for tip lookup
type TipRepository interface {
	// GetByID retrieves a tip by its ID
	//
	// If no tip with such ID exists, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, tipID int) (*models.Tip, error)
}

// AccountRepository defines the interface for account lookup
type AccountRepository interface {
	// GetByID retrieves an account by its ID
	//
	// If no account with such ID exists, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, accountID int) (*models.Account, error)
	// ListPoliceEmails retrieves the email addresses of all police accounts
	ListPoliceEmails(ctx context.Context) ([]string, error)
}

// Worker handles SOS alert dispatch
type Worker struct {
	logger       *zap.Logger
	tipRepo      TipRepository
	accountRepo  AccountRepository
	smtpHost     string
	smtpPort     int
	smtpUsername string
	smtpPassword string
	smtpFrom     string
}

// NewWorker creates a new worker instance
func NewWorker(
	logger *zap.Logger,
	tipRepo TipRepository,
	accountRepo AccountRepository,
	smtpHost string,
	smtpPort int,
	smtpUsername, smtpPassword, smtpFrom string,
) *Worker {
	return &Worker{
		logger:       logger,
		tipRepo:      tipRepo,
		accountRepo:  accountRepo,
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUsername: smtpUsername,
		smtpPassword: smtpPassword,
		smtpFrom:     smtpFrom,
	}
}

// HandleSOSAlert notifies every police account about a stored SOS tip
func (w *Worker) HandleSOSAlert(ctx context.Context, t *asynq.Task) error {
	// Parse tip ID from payload
	tipIDStr := string(t.Payload())
	tipID := 0
	if _, err := fmt.Sscanf(tipIDStr, "%d", &tipID); err != nil {
		return fmt.Errorf("failed to parse tip ID: %w", err)
	}

	tip, err := w.tipRepo.GetByID(ctx, tipID)
	if err != nil {
		// Tip was deleted before processing, nothing to alert about
		if err.Error() == "tip not found" {
			return nil
		}
		return err
	}

	// SOS tips always reference the submitting account
	submitterName := "Unknown"
	if tip.AccountID != nil {
		account, err := w.accountRepo.GetByID(ctx, *tip.AccountID)
		if err == nil {
			submitterName = account.FullName
		}
	}

	recipients, err := w.accountRepo.ListPoliceEmails(ctx)
	if err != nil {
		return fmt.Errorf("failed to list police emails: %w", err)
	}
	if len(recipients) == 0 {
		w.logger.Warn("no police accounts to alert", zap.Int("tip_id", tipID))
		return nil
	}

	subject := fmt.Sprintf("SOS Alert #%d", tipID)
	body := fmt.Sprintf(
		"<h2>SOS Alert</h2><p><b>From:</b> %s</p><p><b>Time:</b> %s</p><p><b>Location:</b> %s</p>",
		html.EscapeString(submitterName),
		html.EscapeString(tip.Time),
		html.EscapeString(tip.Location),
	)

	var failed []string
	for _, recipient := range recipients {
		if err := w.sendEmail(recipient, subject, body); err != nil {
			w.logger.Error("failed to send sos alert email",
				zap.Int("tip_id", tipID),
				zap.String("recipient", recipient),
				zap.Error(err),
			)
			failed = append(failed, recipient)
		}
	}

	// Returning an error makes asynq retry the whole task, so only fail
	// when nobody got the alert.
	if len(failed) == len(recipients) {
		return fmt.Errorf("failed to alert any police account: %s", strings.Join(failed, ", "))
	}

	w.logger.Info("SOS alert dispatched",
		zap.Int("tip_id", tipID),
		zap.Int("recipients", len(recipients)-len(failed)),
	)
	return nil
}

// sendEmail sends an email using gopkg.in/mail.v2
func (w *Worker) sendEmail(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", w.smtpFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(w.smtpHost, w.smtpPort, w.smtpUsername, w.smtpPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
