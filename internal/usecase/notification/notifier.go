package notification

import (
	"context"
	"log/slog"
	"time"

	clientDomain "github.com/BruksfildServices01/shift-scheduler/internal/domain/client"
	shiftDomain "github.com/BruksfildServices01/shift-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
	"github.com/BruksfildServices01/shift-scheduler/internal/notify"
	"github.com/BruksfildServices01/shift-scheduler/internal/timezone"
)

const (
	// NewShiftsWindow is how far back the new-shift scan looks.
	NewShiftsWindow = 5 * time.Minute

	notifiedTTL = 24 * time.Hour
)

// Queue takes mails for background delivery.
type Queue interface {
	Dispatch(m notify.Message)
}

// Service owns every client-facing email: the per-booking confirmation and
// the periodic scans.
type Service struct {
	clients clientDomain.Repository
	shifts  shiftDomain.Repository
	mailer  notify.Mailer
	queue   Queue
	marker  notify.Marker
}

func NewService(
	clients clientDomain.Repository,
	shifts shiftDomain.Repository,
	mailer notify.Mailer,
	queue Queue,
	marker notify.Marker,
) *Service {
	return &Service{
		clients: clients,
		shifts:  shifts,
		mailer:  mailer,
		queue:   queue,
		marker:  marker,
	}
}

// ShiftAssigned queues the booking confirmation. It never fails the caller.
func (s *Service) ShiftAssigned(
	ctx context.Context,
	shift *models.Shift,
	client *models.Client,
	service *models.Service,
) {
	if client == nil || !client.HasEmail() {
		return
	}
	if !s.firstNotification(ctx, shift.ID) {
		return
	}

	msg, err := notify.ShiftAssignedMessage(
		*client.Email,
		client.Name,
		service.Name,
		shift.DateShift.In(timezone.Location()),
	)
	if err != nil {
		slog.Error("render shift assigned mail", "shift_id", shift.ID, "error", err)
		return
	}

	s.queue.Dispatch(msg)
}

func (s *Service) firstNotification(ctx context.Context, shiftID uint) bool {
	if s.marker == nil {
		return true
	}
	first, err := s.marker.MarkOnce(ctx, notify.ShiftNotifiedKey(shiftID), notifiedTTL)
	if err != nil {
		// better a duplicate mail than a missing one
		slog.Warn("notification marker unavailable", "shift_id", shiftID, "error", err)
		return true
	}
	return first
}

// SendBirthdayGreetings mails every active client born on today's month and
// day. It returns how many mails were delivered.
func (s *Service) SendBirthdayGreetings(ctx context.Context, today time.Time) (int, error) {
	day := today.In(timezone.Location())

	clients, err := s.clients.List(ctx, clientDomain.ListFilter{Birthday: &day})
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, c := range clients {
		if !c.HasEmail() {
			continue
		}

		msg, err := notify.BirthdayMessage(*c.Email, c.Name)
		if err != nil {
			slog.Error("render birthday mail", "client_id", c.ID, "error", err)
			continue
		}
		if err := s.mailer.Send(ctx, msg); err != nil {
			slog.Error("birthday mail failed", "client_id", c.ID, "error", err)
			continue
		}
		sent++
	}

	slog.Info("birthday scan finished", "candidates", len(clients), "sent", sent)
	return sent, nil
}

// SendReminders mails one reminder per active shift scheduled for the day
// after now.
func (s *Service) SendReminders(ctx context.Context, now time.Time) (int, error) {
	from, to := timezone.DayBounds(now.In(timezone.Location()).AddDate(0, 0, 1))

	shifts, err := s.shifts.ListActiveBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, sh := range shifts {
		if !sh.Client.HasEmail() {
			continue
		}

		msg, err := notify.ReminderMessage(
			*sh.Client.Email,
			sh.Client.Name,
			sh.Service.Name,
			sh.DateShift.In(timezone.Location()),
		)
		if err != nil {
			slog.Error("render reminder mail", "shift_id", sh.ID, "error", err)
			continue
		}
		if err := s.mailer.Send(ctx, msg); err != nil {
			slog.Error("reminder mail failed", "shift_id", sh.ID, "error", err)
			continue
		}
		sent++
	}

	slog.Info("reminder scan finished", "shifts", len(shifts), "sent", sent)
	return sent, nil
}

// NotifyNewShifts sends the booking confirmation for shifts created during
// the last few minutes that were not confirmed yet.
func (s *Service) NotifyNewShifts(ctx context.Context, now time.Time) (int, error) {
	shifts, err := s.shifts.ListCreatedBetween(ctx, now.Add(-NewShiftsWindow), now)
	if err != nil {
		return 0, err
	}

	queued := 0
	for i := range shifts {
		sh := &shifts[i]
		if !sh.Client.HasEmail() || !s.firstNotification(ctx, sh.ID) {
			continue
		}

		msg, err := notify.ShiftAssignedMessage(
			*sh.Client.Email,
			sh.Client.Name,
			sh.Service.Name,
			sh.DateShift.In(timezone.Location()),
		)
		if err != nil {
			slog.Error("render shift assigned mail", "shift_id", sh.ID, "error", err)
			continue
		}
		s.queue.Dispatch(msg)
		queued++
	}

	return queued, nil
}
