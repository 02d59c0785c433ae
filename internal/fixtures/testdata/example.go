package main

import (
	"fmt"
	"log"
)

// User represents a user in the system.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Database is the storage interface user operations run against.
type Database interface {
	GetUser(id int) (*User, error)
	SaveUser(user *User) error
}

const (
	DefaultPort = 8080
	APIVersion  = "v1"
)

var userCache []*User

// NewUser builds a User from a name and email.
func NewUser(name, email string) *User {
	return &User{
		Name:  name,
		Email: email,
	}
}

// GetUserByID retrieves a user by ID from the in-memory cache.
func GetUserByID(id int) (*User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid user ID: %d", id)
	}
	for _, user := range userCache {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user not found: %d", id)
}

// UpdateUserEmail updates a user's email address after validating it.
func UpdateUserEmail(userID int, newEmail string) error {
	if !ValidateEmail(newEmail) {
		return fmt.Errorf("invalid email format: %s", newEmail)
	}
	user, err := GetUserByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	oldEmail := user.Email
	user.Email = newEmail
	log.Printf("updated email for user %d from %s to %s", userID, oldEmail, newEmail)
	return nil
}

// ValidateEmail checks for the bare minimum shape of an email address.
func ValidateEmail(email string) bool {
	return len(email) > 0 && contains(email, "@")
}

func contains(s, substr string) bool {
	return len(s) >= len(substr)
}
