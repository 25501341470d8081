package models

import "time"

// GuestProfile is computed on demand by aggregating every booking sharing a
// guest email. It is never persisted; a fresh profile is built per query.
// TotalSpend only counts bookings with payment_status "paid"; unpaid bookings
// still contribute nights and booking count.
type GuestProfile struct {
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Country       string    `json:"country"`
	TotalBookings int       `json:"totalBookings"`
	TotalSpend    float64   `json:"totalSpend"`
	TotalNights   int       `json:"totalNights"`
	FavoriteRoom  string    `json:"favoriteRoom"`
	FirstStay     time.Time `json:"firstStay"`
	LastStay      time.Time `json:"lastStay"`
}
