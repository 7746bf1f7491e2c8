package model

import "time"

// Attendance modes accepted for a conference reservation.  The wire
// values match what the reservation form submits.
const (
	ModeVirtual    = "virtual"
	ModePresencial = "presencial"
)

// Reservation records one claimed seat for the investor conference.
// Records are created exactly once through the reservation write path
// and are never updated or deleted; there is no cancellation flow.
//
// Fields:
//  ID        – system-generated identifier (UUID string).
//  Name      – registrant full name, trimmed.
//  Email     – registrant email, lowercased and trimmed.  Unique
//              across all reservations.
//  Phone     – optional contact phone.
//  Country   – registrant country, trimmed.
//  Mode      – attendance mode (virtual or presencial).
//  CreatedAt – creation timestamp, set at insert.
type Reservation struct {
	ID        string    // conference_reservations.id
	Name      string    // conference_reservations.name
	Email     string    // conference_reservations.email
	Phone     string    // conference_reservations.phone (nullable)
	Country   string    // conference_reservations.country
	Mode      string    // conference_reservations.mode
	CreatedAt time.Time // conference_reservations.created_at
}

// CapacitySnapshot is a derived view of conference seat availability.
// It is computed fresh from the store on every read and never
// persisted.  RemainingSeats is floored at zero so the value stays
// displayable even if the store ever drifts past capacity.
type CapacitySnapshot struct {
	TotalSeats     int  `json:"totalSeats"`
	ReservedSeats  int  `json:"reservedSeats"`
	RemainingSeats int  `json:"remainingSeats"`
	IsFull         bool `json:"isFull"`
}
