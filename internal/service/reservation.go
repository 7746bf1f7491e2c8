// Package service implements the conference capacity manager: the
// business logic that keeps the number of reserved seats within the
// fixed capacity and rejects duplicate registrations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/goodenergy/platform/internal/model"
	"github.com/goodenergy/platform/internal/queue"
	"github.com/goodenergy/platform/internal/repository"
)

// ConferenceCapacity is the fixed number of seats for the investor
// conference.  It is a deployment constant, not request input.
const ConferenceCapacity = 15

// ReservationStore is the persistence capability the capacity manager
// needs: a fresh count, a lookup by normalized email, and an insert.
// *repository.ReservationRepo satisfies it in production; tests supply
// in-memory fakes.
type ReservationStore interface {
	Count(ctx context.Context) (int, error)
	FindByEmail(ctx context.Context, email string) (*model.Reservation, error)
	Create(ctx context.Context, res *model.Reservation) error
}

// Notifier dispatches the post-reservation notifications.  Dispatch is
// best-effort: the write path logs and swallows any error because the
// seat accounting, not the notification, is the system of record.
// *queue.Publisher satisfies it in production.
type Notifier interface {
	ReservationConfirmed(ctx context.Context, event queue.ReservationConfirmedEvent) error
}

// ReserveRequest is the candidate reservation payload.  Validation
// rules run in field order: name, email, country, mode.  The email
// check is deliberately loose (contains "@") to match the form's own
// behavior; the mode must be one of the two recognized values.
type ReserveRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,contains=@"`
	Phone   string `json:"phone"`
	Country string `json:"country" validate:"required,min=2"`
	Mode    string `json:"mode" validate:"required,oneof=virtual presencial"`
}

// ReserveResult is returned on a successful reservation.
type ReserveResult struct {
	ID                string `json:"id"`
	RemainingSeats    int    `json:"remainingSeats"`
	TotalReservations int    `json:"totalReservations"`
}

// validationMessages maps a failing field to its user-facing message.
var validationMessages = map[string]string{
	"Name":    "El nombre debe tener al menos 2 caracteres",
	"Email":   "Por favor ingresa un email válido",
	"Country": "Por favor selecciona tu país",
	"Mode":    "Por favor selecciona la modalidad de asistencia",
}

// ReservationService enforces the capacity invariant (reservations
// never exceed ConferenceCapacity) and email uniqueness, and reports
// seat availability.  The count-check, duplicate-check and insert run
// as three separate statements without a wrapping transaction; the
// unique index on the email column is the only database-level guard.
type ReservationService struct {
	store    ReservationStore
	notifier Notifier
	validate *validator.Validate
}

// NewReservationService constructs the capacity manager.  notifier may
// be nil, in which case no notifications are dispatched.
func NewReservationService(store ReservationStore, notifier Notifier) *ReservationService {
	if store == nil {
		panic("nil store passed to NewReservationService")
	}
	return &ReservationService{
		store:    store,
		notifier: notifier,
		validate: validator.New(),
	}
}

// normalize trims every string field and lowercases the email so
// storage and comparisons are case-insensitive.
func (req *ReserveRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.Country = strings.TrimSpace(req.Country)
	req.Mode = strings.TrimSpace(req.Mode)
}

// checkValid runs the struct validation rules and converts the first
// failure into a ValidationError with its Spanish message.  Struct
// fields are validated in declaration order, which matches the
// contract: name, then email, then country, then mode.
func (s *ReservationService) checkValid(req *ReserveRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].Field()
		msg, ok := validationMessages[field]
		if !ok {
			msg = "Solicitud inválida"
		}
		return &ValidationError{Field: field, Message: msg}
	}
	return err
}

// Reserve is the capacity manager's write path.  Order of checks:
//  1. field validation (first failure short-circuits),
//  2. capacity: current count >= ConferenceCapacity fails before any
//     lookup is wasted on a full event,
//  3. duplicate: an existing reservation under the normalized email,
//  4. insert, then a fresh recount (never an in-memory decrement).
// On success it best-effort dispatches the confirmation and admin
// notifications and returns the new ID with the updated counts.
func (s *ReservationService) Reserve(ctx context.Context, req ReserveRequest) (*ReserveResult, error) {
	req.normalize()
	if err := s.checkValid(&req); err != nil {
		return nil, err
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}
	if count >= ConferenceCapacity {
		return nil, ErrCapacityExceeded
	}

	if _, err := s.store.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrReservationNotFound) {
		return nil, fmt.Errorf("lookup reservation by email: %w", err)
	}

	res := &model.Reservation{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Country: req.Country,
		Mode:    req.Mode,
	}
	if err := s.store.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("recount reservations: %w", err)
	}
	remaining := ConferenceCapacity - total
	if remaining < 0 {
		remaining = 0
	}

	if s.notifier != nil {
		ev := queue.ReservationConfirmedEvent{
			ReservationID:   res.ID,
			Name:            res.Name,
			Email:           res.Email,
			Phone:           res.Phone,
			Country:         res.Country,
			Mode:            res.Mode,
			RemainingSeats:  remaining,
			TotalSeats:      ConferenceCapacity,
			CapacityReached: remaining == 0,
			ReservedAt:      time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.notifier.ReservationConfirmed(ctx, ev); err != nil {
			log.Printf("reservation: notification dispatch failed for %s: %v", res.Email, err)
		}
	}

	log.Printf("reservation: created %s (%d seats remaining)", res.Email, remaining)
	return &ReserveResult{
		ID:                res.ID,
		RemainingSeats:    remaining,
		TotalReservations: total,
	}, nil
}

// Availability is the read path.  It computes a fresh capacity
// snapshot from the store on every call; remaining seats are floored
// at zero and the full flag trips at or beyond capacity.
func (s *ReservationService) Availability(ctx context.Context) (model.CapacitySnapshot, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return model.CapacitySnapshot{}, fmt.Errorf("count reservations: %w", err)
	}
	remaining := ConferenceCapacity - count
	if remaining < 0 {
		remaining = 0
	}
	return model.CapacitySnapshot{
		TotalSeats:     ConferenceCapacity,
		ReservedSeats:  count,
		RemainingSeats: remaining,
		IsFull:         count >= ConferenceCapacity,
	}, nil
}
