// Package model defines domain entities for the application.
package model

import "time"

// User is the single resource served by the API.
// ID and CreatedAt are assigned by the store and never change afterwards.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
