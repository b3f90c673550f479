package user

import (
	"time"

	"medicore-be/internal/utils"
)

type Role string

const (
	RolePatient    Role = utils.RolePatient
	RoleDoctor     Role = utils.RoleDoctor
	RolePharmacist Role = utils.RolePharmacist
	RoleAdmin      Role = utils.RoleAdmin
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RolePharmacist, RoleAdmin:
		return true
	}
	return false
}

const MinPasswordLength = 8

type User struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateUserParams struct {
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     Role
}

type UpdateProfileParams struct {
	UserID   uint
	Name     *string
	Phone    *string
	Password *string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
