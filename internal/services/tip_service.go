package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/citywatch/backend/internal/models"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TaskSOSAlert is the queue task type for SOS alert dispatch
const TaskSOSAlert = "sos:alert"

// QueueSOS is the dedicated queue for SOS alerts
const QueueSOS = "sos"

// TipRepository is the interface that wraps methods for tip table data access
type TipRepository interface {
	// Method Create inserts a new tip into the database.
	//
	// Identical submissions create distinct records; tips carry no idempotency key.
	Create(ctx context.Context, tip *models.Tip) error
	// Method ListByAccount retrieves an account's tips, newest first.
	ListByAccount(ctx context.Context, accountID int) ([]models.TipListItem, error)
	// Method UpdateStatus updates the status of a tip.
	UpdateStatus(ctx context.Context, tipID int, status models.TipStatus) error
}

// TaskEnqueuer enqueues background tasks. Satisfied by *asynq.Client.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// tipService implements tip submission and listing
type tipService struct {
	tipRepo  TipRepository
	enqueuer TaskEnqueuer
	logger   *zap.Logger
}

// NewTipService creates a new tip service
func NewTipService(tipRepo TipRepository, enqueuer TaskEnqueuer, logger *zap.Logger) *tipService {
	return &tipService{
		tipRepo:  tipRepo,
		enqueuer: enqueuer,
		logger:   logger,
	}
}

// SubmitAnonymous validates and stores an anonymous tip.
// All fields except media are mandatory; the phone number must be 10 digits.
func (s *tipService) SubmitAnonymous(ctx context.Context, req *models.SubmitTipRequest) error {
	if err := checkAnonymousTip(req); err != nil {
		return err
	}

	tip := &models.Tip{
		Name:        strings.TrimSpace(req.Name),
		Phone:       req.Phone,
		Time:        req.Time,
		Location:    req.Location,
		Title:       req.Title,
		Description: req.Description,
		Media:       req.Media,
		Kind:        models.TipKindRegular,
		Status:      models.TipStatusPending,
	}

	return s.tipRepo.Create(ctx, tip)
}

// SubmitSOS stores a high-priority location-tagged tip for the authenticated
// account and dispatches an alert to police accounts through the task queue.
func (s *tipService) SubmitSOS(ctx context.Context, accountID int, req *models.SubmitSOSRequest) error {
	if strings.TrimSpace(req.Time) == "" {
		return fmt.Errorf("%w: time is required", ErrValidation)
	}

	tip := &models.Tip{
		AccountID:   &accountID,
		Time:        req.Time,
		Location:    fmt.Sprintf("%v, %v", req.Latitude, req.Longitude),
		Title:       "SOS Alert",
		Description: "Emergency assistance requested",
		Kind:        models.TipKindSOS,
		Status:      models.TipStatusPending,
	}

	if err := s.tipRepo.Create(ctx, tip); err != nil {
		return err
	}

	// The tip is already stored; a queue failure must not fail the submission.
	payload := []byte(strconv.Itoa(tip.ID))
	task := asynq.NewTask(TaskSOSAlert, payload)
	if _, err := s.enqueuer.Enqueue(task, asynq.Queue(QueueSOS)); err != nil {
		s.logger.Warn("failed to enqueue sos alert", zap.Int("tipId", tip.ID), zap.Error(err))
	}

	return nil
}

// ListByAccount retrieves the authenticated account's tips, newest first
func (s *tipService) ListByAccount(ctx context.Context, accountID int) ([]models.TipListItem, error) {
	return s.tipRepo.ListByAccount(ctx, accountID)
}

// UpdateStatus transitions a tip's status (police only, enforced at the route)
func (s *tipService) UpdateStatus(ctx context.Context, tipID int, status string) error {
	parsed, ok := models.ParseTipStatus(status)
	if !ok {
		return fmt.Errorf("%w: invalid status: %s", ErrValidation, status)
	}

	if err := s.tipRepo.UpdateStatus(ctx, tipID, parsed); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("%w: tip %d", ErrNotFound, tipID)
		}
		return err
	}

	return nil
}

// checkAnonymousTip validates the anonymous tip fields
func checkAnonymousTip(req *models.SubmitTipRequest) error {
	required := map[string]string{
		"name":        req.Name,
		"phone":       req.Phone,
		"time":        req.Time,
		"location":    req.Location,
		"title":       req.Title,
		"description": req.Description,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, field)
		}
	}

	if !phoneRegex.MatchString(req.Phone) {
		return fmt.Errorf("%w: phone number must be 10 digits", ErrValidation)
	}

	return nil
}
