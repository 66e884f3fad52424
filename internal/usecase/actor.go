package usecase

import "github.com/fadilmartias/resume-matcher/internal/model"

// Actor is the authenticated caller of a usecase.
type Actor struct {
	Email string
	Role  string
}

func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

func (a Actor) canRead(ownerEmail string) bool {
	return a.IsAdmin() || a.Email == ownerEmail
}
