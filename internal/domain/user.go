// Package domain holds the entities shared by the roster services.
package domain

import "time"

// User is a registered account. SenderID is the Telegram user id and is unique.
type User struct {
	ID          int64     `db:"id"`
	SenderID    int64     `db:"sender_id"`
	FullName    string    `db:"full_name"`
	Email       string    `db:"email"`
	PhoneNumber string    `db:"phone_number"`
	IsOperator  bool      `db:"is_operator"`
	CreatedAt   time.Time `db:"created_at"`
}

// Registration carries the fields collected by the registration dialogue.
type Registration struct {
	SenderID    int64
	FullName    string
	Email       string
	PhoneNumber string
}

// User returns the record a completed registration creates.
func (r Registration) User() User {
	return User{
		SenderID:    r.SenderID,
		FullName:    r.FullName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
	}
}
