package models

import (
	"time"
)

type Role int

// Account role constants
const (
	RoleCitizen Role = 1
	RolePolice  Role = 2
)

// String returns the wire representation of the role ("citizen" or "police")
func (r Role) String() string {
	switch r {
	case RoleCitizen:
		return "citizen"
	case RolePolice:
		return "police"
	default:
		return "unknown"
	}
}

// Account represents a citizen or police account
type Account struct {
	ID           int       `json:"id"`
	Role         Role      `json:"role"` // 1=Citizen, 2=Police
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"` // citizen accounts only
	BadgeNumber  string    `json:"badgeNumber,omitempty"` // police accounts only
	Department   string    `json:"department,omitempty"`
	Rank         string    `json:"rank,omitempty"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Verified     bool      `json:"verified"` // police accounts start unverified
	CreatedAt    time.Time `json:"createdAt"`
}

// CitizenSignupRequest represents a citizen signup request
type CitizenSignupRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// PoliceSignupRequest represents a police signup request
type PoliceSignupRequest struct {
	FullName    string `json:"fullName"`
	BadgeNumber string `json:"badgeNumber"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Department  string `json:"department"`
	Rank        string `json:"rank"`
}

// LoginRequest represents a login request for either account kind
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
