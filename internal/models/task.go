package models

import (
	"time"
)

// Task represents a single task owned by one user
type Task struct {
	ID        string    `firestore:"id" json:"id"`
	OwnerID   string    `firestore:"ownerId" json:"ownerId"`
	Title     string    `firestore:"title" json:"title"`
	Completed bool      `firestore:"completed" json:"completed"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
