package models

import "time"

type TipKind int

// Tip kind constants
const (
	TipKindRegular TipKind = 1
	TipKindSOS     TipKind = 2
)

// String returns the wire representation of the tip kind
func (k TipKind) String() string {
	switch k {
	case TipKindSOS:
		return "SOS"
	default:
		return "Regular"
	}
}

type TipStatus int

// Tip status constants
const (
	TipStatusPending TipStatus = 1
	TipStatusSolved  TipStatus = 2
)

// String returns the wire representation of the tip status
func (s TipStatus) String() string {
	switch s {
	case TipStatusSolved:
		return "Solved"
	default:
		return "Pending"
	}
}

// ParseTipStatus converts a wire status back to a TipStatus
func ParseTipStatus(s string) (TipStatus, bool) {
	switch s {
	case "Pending":
		return TipStatusPending, true
	case "Solved":
		return TipStatusSolved, true
	default:
		return 0, false
	}
}

// Tip represents an incident report, anonymous or attributed.
// Anonymous tips carry contact fields and no account reference;
// SOS tips reference the submitting account and carry no contact fields.
type Tip struct {
	ID          int       `json:"id"`
	AccountID   *int      `json:"accountId,omitempty"`
	Name        string    `json:"name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Media       string    `json:"media,omitempty"` // URL to uploaded media
	Kind        TipKind   `json:"kind"`
	Status      TipStatus `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TipListItem is the projection exposed when listing an account's tips.
// No contact fields beyond the account's own are ever included.
type TipListItem struct {
	ID       int    `json:"id"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

// SubmitTipRequest represents an anonymous tip submission
type SubmitTipRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Media       string `json:"media,omitempty"`
}

// UpdateTipStatusRequest represents a police status transition request
type UpdateTipStatusRequest struct {
	Status string `json:"status"`
}

// SubmitSOSRequest represents an authenticated SOS submission
type SubmitSOSRequest struct {
	Time      string  `json:"time"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
