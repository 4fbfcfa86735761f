package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tablebook/internal/cache"
	"tablebook/internal/errors"
	"tablebook/internal/model"
	"tablebook/internal/repository"
)

const reservationCacheTTL = 5 * time.Minute

// CreateReservationInput carries the raw fields of a reservation request.
type CreateReservationInput struct {
	FirstName       string
	LastName        string
	Email           string
	PartySize       int
	Occasion        string
	ReservationDate string
	ReservationTime string
	Phone           string
	SpecialRequests string
}

// ListReservationsInput carries the optional list filters as submitted.
type ListReservationsInput struct {
	Status string
	Date   string
}

// ReservationService handles the reservation workflow: validation,
// duplicate detection, and status lifecycle.
type ReservationService interface {
	Create(ctx context.Context, input CreateReservationInput) (*model.Reservation, error)
	List(ctx context.Context, input ListReservationsInput) ([]model.Reservation, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) (*model.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reservationService struct {
	repo      repository.ReservationRepository
	cache     *cache.Client
	validator *ReservationValidator
}

// NewReservationService creates a new reservation service.
func NewReservationService(repo repository.ReservationRepository, cache *cache.Client) ReservationService {
	return &reservationService{
		repo:      repo,
		cache:     cache,
		validator: NewReservationValidator(),
	}
}

func (s *reservationService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("reservation:%s", id.String())
}

// Create validates the input, rejects duplicate active bookings for the same
// (email, date, time) slot, and persists a new pending reservation.
//
// Validation order is fixed so error reporting stays deterministic:
// required fields, then date, then email, then phone, then field ranges,
// then the duplicate lookup.
func (s *reservationService) Create(ctx context.Context, input CreateReservationInput) (*model.Reservation, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)

	if firstName == "" || lastName == "" || email == "" || phone == "" ||
		input.PartySize == 0 || input.Occasion == "" ||
		input.ReservationDate == "" || input.ReservationTime == "" {
		return nil, errors.NewValidationError("All required fields must be filled")
	}

	date, err := s.validator.ParseDate(input.ReservationDate)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateDateNotPast(date, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := s.validator.ValidatePhone(phone); err != nil {
		return nil, err
	}
	if err := s.validator.ValidatePartySize(input.PartySize); err != nil {
		return nil, err
	}
	occasion := model.OccasionType(input.Occasion)
	if err := s.validator.ValidateOccasion(occasion); err != nil {
		return nil, err
	}

	// Check-then-insert is not atomic; two identical concurrent submissions
	// may both pass. Acceptable for this domain.
	if _, err := s.repo.FindActiveSlot(ctx, email, date, input.ReservationTime); err == nil {
		return nil, errors.ErrDuplicateReservation
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}

	reservation := &model.Reservation{
		FirstName:       firstName,
		LastName:        lastName,
		Email:           email,
		PartySize:       input.PartySize,
		Occasion:        occasion,
		ReservationDate: date,
		ReservationTime: input.ReservationTime,
		Phone:           phone,
		SpecialRequests: input.SpecialRequests,
		Status:          model.ReservationStatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	return reservation, nil
}

// List returns reservations matching the optional status and calendar-day
// filters, ordered ascending by date then time.
func (s *reservationService) List(ctx context.Context, input ListReservationsInput) ([]model.Reservation, error) {
	filter := repository.ListFilter{
		Status: model.ReservationStatus(input.Status),
	}
	if input.Date != "" {
		date, err := s.validator.ParseDate(input.Date)
		if err != nil {
			return nil, err
		}
		filter.Date = &date
	}

	reservations, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	if reservations == nil {
		reservations = []model.Reservation{}
	}
	return reservations, nil
}

// Get retrieves a reservation by ID with read-through caching.
func (s *reservationService) Get(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Reservation
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}

	if data, err := json.Marshal(reservation); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), data, reservationCacheTTL)
	}
	return reservation, nil
}

// UpdateStatus overwrites the lifecycle status of an existing reservation.
// Any known status may move to any other.
func (s *reservationService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) (*model.Reservation, error) {
	if !status.IsValid() {
		return nil, errors.NewValidationError("Invalid status")
	}

	reservation, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, fmt.Errorf("update status: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return reservation, nil
}

// Delete removes a reservation permanently.
func (s *reservationService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if !deleted {
		return errors.ErrReservationNotFound
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
