package appointment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	appointmenterrors "github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/appointment/errors"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/customer"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/employee"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/events"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/messaging/kafka"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CustomerDirectory is the slice of the customer module the booking flow
// needs: resolve the owning customer or fail NotFound.
type CustomerDirectory interface {
	FindByID(ctx context.Context, id string) (*customer.Customer, error)
}

// TechnicianDirectory resolves assignment-by-name. A miss is not an error:
// the name is kept as free text and the employee link stays empty.
type TechnicianDirectory interface {
	FindByFullName(ctx context.Context, name string) (*employee.Employee, error)
}

//go:generate mockgen -source=appointment_service.go -destination=mock/appointment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAppointmentRequest) (AppointmentResponse, error)
	GetAll(ctx context.Context) ([]AppointmentResponse, error)
	GetByID(ctx context.Context, id string) (AppointmentResponse, error)
	Update(ctx context.Context, id string, req UpdateAppointmentRequest) (AppointmentResponse, error)
	Delete(ctx context.Context, id string) error
	ListByCustomer(ctx context.Context, customerID string) ([]AppointmentResponse, error)
	ListByEmployeeAndStatuses(ctx context.Context, employeeID string, statuses []string) ([]AppointmentResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	customers   CustomerDirectory
	technicians TechnicianDirectory
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	customers CustomerDirectory,
	technicians TechnicianDirectory,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("appointment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("appointment.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		customers:   customers,
		technicians: technicians,
		outbox:      outboxRepo,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, req CreateAppointmentRequest) (AppointmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create appointment requested",
		zap.String("request_id", rid),
		zap.String("customer_id", req.CustomerID),
		zap.String("date", req.Date),
		zap.String("time", req.Time),
	)

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return AppointmentResponse{}, appointmenterrors.ErrInvalidCustomerID
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return AppointmentResponse{}, err
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return AppointmentResponse{}, appointmenterrors.ErrInvalidTimeFormat
	}
	status := req.Status
	if status == "" {
		status = StatusPending
	}
	if !IsValidStatus(status) {
		return AppointmentResponse{}, appointmenterrors.ErrInvalidStatus
	}
	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		d, err := parseDate(*req.DueDate)
		if err != nil {
			return AppointmentResponse{}, err
		}
		dueDate = &d
	}

	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AppointmentResponse{}, appointmenterrors.ErrCustomerNotFound
		}
		s.logger.Error("create appointment customer lookup failed", zap.Error(err))
		return AppointmentResponse{}, err
	}

	a := &Appointment{
		ID:                  uuid.New(),
		CustomerID:          customerID,
		ServiceType:         req.ServiceType,
		Vehicle:             req.Vehicle,
		Date:                date,
		Time:                req.Time,
		Status:              status,
		Notes:               req.Notes,
		DueDate:             dueDate,
		SpecialInstructions: req.SpecialInstructions,
		EstimatedHours:      req.EstimatedHours,
	}
	s.assignTechnician(ctx, a, req.TechnicianName)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create appointment begin tx failed", zap.Error(err))
		return AppointmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("create appointment persist failed", zap.Error(err))
		return AppointmentResponse{}, err
	}

	if err := s.queueAppointmentEvent(ctx, tx, a, "appointment_created", events.AppointmentAdminTopic, ""); err != nil {
		return AppointmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create appointment commit failed", zap.Error(err))
		return AppointmentResponse{}, err
	}

	s.logger.Info("create appointment success",
		zap.String("request_id", rid),
		zap.String("appointment_id", a.ID.String()),
		zap.String("status", a.Status),
	)
	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context) ([]AppointmentResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AppointmentResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AppointmentResponse{}, appointmenterrors.ErrAppointmentNotFound
		}
		return AppointmentResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAppointmentRequest) (AppointmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update appointment requested",
		zap.String("request_id", rid),
		zap.String("appointment_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update appointment begin tx failed", zap.Error(err))
		return AppointmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AppointmentResponse{}, appointmenterrors.ErrAppointmentNotFound
		}
		s.logger.Error("update appointment fetch existing failed", zap.Error(err))
		return AppointmentResponse{}, err
	}

	// Partial-update semantics: only provided fields change.
	if req.ServiceType != nil {
		a.ServiceType = *req.ServiceType
	}
	if req.Vehicle != nil {
		a.Vehicle = *req.Vehicle
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return AppointmentResponse{}, err
		}
		a.Date = date
	}
	if req.Time != nil {
		if _, err := time.Parse("15:04", *req.Time); err != nil {
			return AppointmentResponse{}, appointmenterrors.ErrInvalidTimeFormat
		}
		a.Time = *req.Time
	}
	if req.Status != nil {
		if !IsValidStatus(*req.Status) {
			return AppointmentResponse{}, appointmenterrors.ErrInvalidStatus
		}
		if !isAllowedStatusTransition(a.Status, *req.Status) {
			s.logger.Warn("update appointment invalid status transition",
				zap.String("appointment_id", id),
				zap.String("from_status", a.Status),
				zap.String("to_status", *req.Status),
			)
			return AppointmentResponse{}, appointmenterrors.ErrInvalidStatusTransition
		}
		a.Status = *req.Status
	}
	if req.Notes != nil {
		a.Notes = req.Notes
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			return AppointmentResponse{}, appointmenterrors.ErrInvalidProgress
		}
		a.Progress = *req.Progress
	}
	if req.TechnicianName != nil {
		s.assignTechnician(ctx, a, *req.TechnicianName)
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			a.DueDate = nil
		} else {
			d, err := parseDate(*req.DueDate)
			if err != nil {
				return AppointmentResponse{}, err
			}
			a.DueDate = &d
		}
	}
	if req.SpecialInstructions != nil {
		a.SpecialInstructions = req.SpecialInstructions
	}
	if req.EstimatedHours != nil {
		a.EstimatedHours = *req.EstimatedHours
	}

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("update appointment persist failed", zap.Error(err))
		return AppointmentResponse{}, err
	}

	if err := s.queueAppointmentEvent(ctx, tx, a, "appointment_updated", events.AppointmentAdminTopic, ""); err != nil {
		return AppointmentResponse{}, err
	}
	if a.CustomerID != uuid.Nil {
		if err := s.queueAppointmentEvent(ctx, tx, a, "appointment_updated", events.CustomerNotifyTopic, a.CustomerID.String()); err != nil {
			return AppointmentResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update appointment commit failed", zap.Error(err))
		return AppointmentResponse{}, err
	}

	s.logger.Info("update appointment success",
		zap.String("request_id", rid),
		zap.String("appointment_id", id),
		zap.String("status", a.Status),
	)
	return mapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete appointment failed", zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete appointment success", zap.String("appointment_id", id))
	return nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID string) ([]AppointmentResponse, error) {
	if _, err := uuid.Parse(customerID); err != nil {
		return nil, appointmenterrors.ErrInvalidCustomerID
	}
	rows, err := s.repo.FindAllByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListByEmployeeAndStatuses(ctx context.Context, employeeID string, statuses []string) ([]AppointmentResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, appointmenterrors.ErrInvalidEmployeeID
	}
	if len(statuses) == 0 {
		statuses = ActiveStatuses
	}
	for _, st := range statuses {
		if !IsValidStatus(st) {
			return nil, appointmenterrors.ErrInvalidStatus
		}
	}
	rows, err := s.repo.FindByEmployeeAndStatuses(ctx, employeeID, statuses)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// assignTechnician resolves a technician name against the employee directory.
// An empty name clears the assignment; an unknown name keeps the raw string
// with no employee link.
func (s *service) assignTechnician(ctx context.Context, a *Appointment, name string) {
	if name == "" {
		a.TechnicianID = nil
		a.TechnicianName = ""
		return
	}

	a.TechnicianName = name
	a.TechnicianID = nil

	emp, err := s.technicians.FindByFullName(ctx, name)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("technician lookup failed, keeping name only",
				zap.String("technician_name", name),
				zap.Error(err),
			)
		}
		return
	}
	id := emp.ID
	a.TechnicianID = &id
}

func (s *service) queueAppointmentEvent(ctx context.Context, tx *sql.Tx, a *Appointment, eventType, topic, key string) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.AppointmentEvent{
		EventType:   eventType,
		RequestID:   rid,
		Appointment: snapshotOf(*a),
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal appointment event failed", zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "appointment",
		AggregateID:   a.ID.String(),
		EventType:     eventType,
		Topic:         topic,
		Key:           key,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("queue appointment event failed",
			zap.String("appointment_id", a.ID.String()),
			zap.String("topic", topic),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func snapshotOf(a Appointment) events.AppointmentSnapshot {
	snap := events.AppointmentSnapshot{
		ID:             a.ID.String(),
		CustomerID:     a.CustomerID.String(),
		ServiceType:    a.ServiceType,
		Vehicle:        a.Vehicle,
		Date:           a.Date.Format("2006-01-02"),
		Time:           a.Time,
		Status:         a.Status,
		Progress:       a.Progress,
		TechnicianName: a.TechnicianName,
		EstimatedHours: a.EstimatedHours,
		ActualHours:    a.ActualHours,
	}
	if a.TechnicianID != nil {
		snap.TechnicianID = a.TechnicianID.String()
	}
	return snap
}

func parseDate(v string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, appointmenterrors.ErrInvalidDateFormat
	}
	return d, nil
}

func mapToResponse(a Appointment) AppointmentResponse {
	resp := AppointmentResponse{
		ID:                  a.ID.String(),
		CustomerID:          a.CustomerID.String(),
		ServiceType:         a.ServiceType,
		Vehicle:             a.Vehicle,
		Date:                a.Date.Format("2006-01-02"),
		Time:                a.Time,
		Status:              a.Status,
		Notes:               a.Notes,
		Progress:            a.Progress,
		SpecialInstructions: a.SpecialInstructions,
		TechnicianName:      a.TechnicianName,
		EstimatedHours:      a.EstimatedHours,
		ActualHours:         a.ActualHours,
	}
	if !a.CreatedAt.IsZero() {
		resp.CreatedAt = a.CreatedAt.Format(time.RFC3339)
	}
	if a.DueDate != nil {
		v := a.DueDate.Format("2006-01-02")
		resp.DueDate = &v
	}
	if a.TechnicianID != nil {
		resp.TechnicianID = a.TechnicianID.String()
	}
	if a.Customer != nil {
		resp.CustomerName = a.Customer.FullName
	}
	return resp
}

func mapToListResponse(rows []Appointment) []AppointmentResponse {
	res := make([]AppointmentResponse, len(rows))
	for i, a := range rows {
		res[i] = mapToResponse(a)
	}
	return res
}
