package models

import "time"

// Staff is a back-office user allowed to access the admin API and the
// assistant chat.
type Staff struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"` // e.g. "manager", "reception"
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
