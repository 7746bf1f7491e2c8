// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into emails.
package queue

// ReservationConfirmedEvent is published after a conference seat has been
// successfully reserved.  It carries enough information for downstream
// consumers to email the registrant and alert the administrator without
// querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID   string `json:"reservation_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	Country         string `json:"country"`
	Mode            string `json:"mode"`
	RemainingSeats  int    `json:"remaining_seats"`
	TotalSeats      int    `json:"total_seats"`
	CapacityReached bool   `json:"capacity_reached"`
	ReservedAt      string `json:"reserved_at"`
}
