package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/employee"

	"go.uber.org/zap"
)

// SlotCount is the fixed one-hour slot universe, "00:00" through "23:00".
const SlotCount = 24

// TechnicianRoster lists the technicians counted for capacity when no
// specific technician is requested.
type TechnicianRoster interface {
	FindActive(ctx context.Context) ([]employee.Employee, error)
}

//go:generate mockgen -source=availability.go -destination=mock/availability_service_mock.go -package=mock
type AvailabilityService interface {
	GetAvailability(ctx context.Context, date string, technicianName string) (AvailabilityResponse, error)
}

type availabilityService struct {
	repo   Repository
	roster TechnicianRoster
	logger *zap.Logger
}

func NewAvailabilityService(repo Repository, roster TechnicianRoster, logger ...*zap.Logger) AvailabilityService {
	l := zap.L().Named("appointment.availability")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("appointment.availability")
	}
	return &availabilityService{repo: repo, roster: roster, logger: l}
}

// GetAvailability is a pure read: it never mutates state.
//
// With a technician name the result is that technician's free slots for the
// date; the technician list echoes the requested name without an existence
// check. Without a name the result is a capacity check per slot: a slot is
// open while fewer distinct technicians are booked on it than the active
// roster holds, and the technician list contains every roster member with at
// least one free slot.
func (s *availabilityService) GetAvailability(ctx context.Context, date string, technicianName string) (AvailabilityResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return AvailabilityResponse{}, err
	}

	if technicianName != "" {
		return s.technicianAvailability(ctx, day, technicianName)
	}
	return s.shopAvailability(ctx, day)
}

func (s *availabilityService) technicianAvailability(ctx context.Context, day time.Time, name string) (AvailabilityResponse, error) {
	booked, err := s.repo.FindActiveByDateAndTechnician(ctx, day, name)
	if err != nil {
		s.logger.Error("availability booked lookup failed", zap.Error(err))
		return AvailabilityResponse{}, err
	}

	busy := make(map[int]bool, len(booked))
	for _, a := range booked {
		if h, ok := slotHour(a.Time); ok {
			busy[h] = true
		}
	}

	slots := make([]string, 0, SlotCount)
	for h := 0; h < SlotCount; h++ {
		if !busy[h] {
			slots = append(slots, slotLabel(h))
		}
	}

	return AvailabilityResponse{
		Date:                 day.Format("2006-01-02"),
		AvailableSlots:       slots,
		AvailableTechnicians: []string{name},
	}, nil
}

func (s *availabilityService) shopAvailability(ctx context.Context, day time.Time) (AvailabilityResponse, error) {
	booked, err := s.repo.FindActiveByDate(ctx, day)
	if err != nil {
		s.logger.Error("availability day lookup failed", zap.Error(err))
		return AvailabilityResponse{}, err
	}

	roster, err := s.roster.FindActive(ctx)
	if err != nil {
		s.logger.Error("availability roster lookup failed", zap.Error(err))
		return AvailabilityResponse{}, err
	}
	total := len(roster)

	// Distinct booked technicians per slot. Unassigned bookings cannot be
	// pinned to a technician and do not consume roster capacity.
	busyBySlot := make(map[int]map[string]struct{})
	busyByTechnician := make(map[string]int)
	for _, a := range booked {
		h, ok := slotHour(a.Time)
		if !ok || a.TechnicianName == "" {
			continue
		}
		if busyBySlot[h] == nil {
			busyBySlot[h] = make(map[string]struct{})
		}
		if _, seen := busyBySlot[h][a.TechnicianName]; !seen {
			busyBySlot[h][a.TechnicianName] = struct{}{}
			busyByTechnician[a.TechnicianName]++
		}
	}

	// With an empty roster 0 < 0 never holds, so no slot is reported open.
	slots := make([]string, 0, SlotCount)
	for h := 0; h < SlotCount; h++ {
		if len(busyBySlot[h]) < total {
			slots = append(slots, slotLabel(h))
		}
	}

	technicians := make([]string, 0, total)
	for _, emp := range roster {
		if busyByTechnician[emp.FullName] < SlotCount {
			technicians = append(technicians, emp.FullName)
		}
	}

	return AvailabilityResponse{
		Date:                 day.Format("2006-01-02"),
		AvailableSlots:       slots,
		AvailableTechnicians: technicians,
	}, nil
}

func slotLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// slotHour maps an appointment's wall-clock time onto its one-hour slot.
func slotHour(v string) (int, bool) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, false
	}
	return t.Hour(), true
}
