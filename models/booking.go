package models

import "time"

// Booking status values (reservation lifecycle).
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCancelled  = "cancelled"
)

// Payment status values. Independent of the booking status axis:
// a confirmed booking may still carry payment_status "pending".
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Booking represents a room reservation record.
type Booking struct {
	ID               string    `bson:"id" json:"id"`
	Reference        string    `bson:"reference" json:"reference"` // payment/booking reference shown to guests
	GuestFirstName   string    `bson:"guest_first_name" json:"guestFirstName"`
	GuestLastName    string    `bson:"guest_last_name" json:"guestLastName"`
	GuestEmail       string    `bson:"guest_email" json:"guestEmail"`
	GuestPhone       string    `bson:"guest_phone" json:"guestPhone"`
	GuestCountry     string    `bson:"guest_country" json:"guestCountry"`
	RoomName         string    `bson:"room_name" json:"roomName"`
	RoomNumber       string    `bson:"room_number" json:"roomNumber"`
	CheckIn          time.Time `bson:"check_in" json:"checkIn"`
	CheckOut         time.Time `bson:"check_out" json:"checkOut"`
	Nights           int       `bson:"nights" json:"nights"`
	Adults           int       `bson:"adults" json:"adults"`
	Children         int       `bson:"children" json:"children"`
	TotalAmount      float64   `bson:"total_amount" json:"totalAmount"`
	BookingStatus    string    `bson:"booking_status" json:"bookingStatus"`
	PaymentStatus    string    `bson:"payment_status" json:"paymentStatus"`
	PaymentMethod    string    `bson:"payment_method" json:"paymentMethod"`
	BookingSource    string    `bson:"booking_source" json:"bookingSource"`
	SpecialRequests  string    `bson:"special_requests" json:"specialRequests"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
}

// GuestName returns the guest's full display name.
func (b *Booking) GuestName() string {
	if b.GuestFirstName == "" {
		return b.GuestLastName
	}
	if b.GuestLastName == "" {
		return b.GuestFirstName
	}
	return b.GuestFirstName + " " + b.GuestLastName
}
