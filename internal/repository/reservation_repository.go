package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tablebook/internal/model"
)

// ListFilter narrows List results. Zero values mean "no constraint".
// Date selects the calendar day [Date, Date+24h).
type ListFilter struct {
	Status model.ReservationStatus
	Date   *time.Time
}

// ReservationRepository defines reservation persistence operations.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	FindActiveSlot(ctx context.Context, email string, date time.Time, timeOfDay string) (*model.Reservation, error)
	List(ctx context.Context, filter ListFilter) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) (*model.Reservation, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository.
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// Create inserts a new reservation record.
func (r *reservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// FindByID finds a reservation by ID.
func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindActiveSlot finds a non-cancelled reservation holding the
// (email, date, time) slot. Returns gorm.ErrRecordNotFound when free.
func (r *reservationRepository) FindActiveSlot(ctx context.Context, email string, date time.Time, timeOfDay string) (*model.Reservation, error) {
	var reservation model.Reservation
	err := r.db.WithContext(ctx).
		Where("email = ? AND reservation_date = ? AND reservation_time = ? AND status <> ?",
			email, date, timeOfDay, model.ReservationStatusCancelled).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// List returns reservations matching the filter, ordered ascending by
// (reservation_date, reservation_time).
func (r *reservationRepository) List(ctx context.Context, filter ListFilter) ([]model.Reservation, error) {
	query := r.db.WithContext(ctx).Model(&model.Reservation{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Date != nil {
		dayStart := *filter.Date
		query = query.Where("reservation_date >= ? AND reservation_date < ?",
			dayStart, dayStart.Add(24*time.Hour))
	}

	var reservations []model.Reservation
	if err := query.Order("reservation_date ASC, reservation_time ASC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// UpdateStatus overwrites the status of the reservation with the given ID and
// returns the updated record. Returns gorm.ErrRecordNotFound for unknown ids.
// Looks the row up first: MySQL reports zero affected rows for a no-op
// update, which would be indistinguishable from a missing record.
func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) (*model.Reservation, error) {
	reservation, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(reservation).Update("status", status).Error; err != nil {
		return nil, err
	}
	reservation.Status = status
	return reservation, nil
}

// DeleteByID removes a reservation permanently. The boolean reports whether
// a record was actually deleted.
func (r *reservationRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Reservation{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
