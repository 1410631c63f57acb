package services

import (
	"github.com/Rustaman1280/tefacontoh/internal/models"
)

// Actor is the authenticated user on whose behalf a mutation runs.
type Actor struct {
	UserID models.UUID
	Name   string
	Email  string
	Role   models.Role
}

// ActorFromUser builds an Actor from a stored user.
func ActorFromUser(u *models.User) Actor {
	return Actor{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
