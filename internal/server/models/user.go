package models

import "time"

// User is an account able to log in and own file nodes.
type User struct {
	ID             string
	Email          string
	PasswordDigest string
	CreatedAt      time.Time
}
