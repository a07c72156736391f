package models

import (
	"time"
)

// User represents an account. PasswordHash is a bcrypt hash and is never
// serialized into API responses.
type User struct {
	ID           string    `firestore:"id" json:"id"`
	Name         string    `firestore:"name" json:"name"`
	Email        string    `firestore:"email" json:"email"`
	PasswordHash string    `firestore:"passwordHash" json:"-"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
}
