package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled:
		return true
	}
	return false
}

// OccasionType represents the occasion a table is booked for.
type OccasionType string

const (
	OccasionDate            OccasionType = "date"
	OccasionFamilyGathering OccasionType = "family_gathering"
	OccasionBirthday        OccasionType = "birthday"
	OccasionKittyParty      OccasionType = "kitty_party"
	OccasionFriendsMeetup   OccasionType = "friends_meetup"
	OccasionOther           OccasionType = "other"
)

// IsValid reports whether the occasion is a known value.
func (o OccasionType) IsValid() bool {
	switch o {
	case OccasionDate, OccasionFamilyGathering, OccasionBirthday,
		OccasionKittyParty, OccasionFriendsMeetup, OccasionOther:
		return true
	}
	return false
}

// Reservation represents a restaurant table booking.
// ReservationDate holds the calendar day at midnight UTC; the time of day
// lives in ReservationTime as the free-form token the guest submitted.
type Reservation struct {
	ID              uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	FirstName       string            `json:"firstName" gorm:"type:varchar(100);not null"`
	LastName        string            `json:"lastName" gorm:"type:varchar(100);not null"`
	Email           string            `json:"email" gorm:"type:varchar(255);not null;index:idx_reservation_slot"`
	PartySize       int               `json:"partySize" gorm:"not null"`
	Occasion        OccasionType      `json:"occasion" gorm:"type:varchar(30);not null"`
	ReservationDate time.Time         `json:"reservationDate" gorm:"not null;index:idx_reservation_slot"`
	ReservationTime string            `json:"reservationTime" gorm:"type:varchar(20);not null;index:idx_reservation_slot"`
	Phone           string            `json:"phone" gorm:"type:varchar(30);not null"`
	SpecialRequests string            `json:"specialRequests" gorm:"type:text"`
	Status          ReservationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
