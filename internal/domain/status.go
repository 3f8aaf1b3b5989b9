package domain

import "strings"

// Status is the soft-delete flag shared by users, products and images.
type Status int

const (
	StatusInactive Status = 0
	StatusActive   Status = 1
)

func (s Status) IsActive() bool {
	return s != StatusInactive
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Is compares roles case-insensitively; roles are free text in storage.
func (r Role) Is(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

type OrderStatus int

const (
	OrderStatusOpen OrderStatus = 0
)

// DateTimeLayout is the wire format of order and payment dates.
const DateTimeLayout = "2006-01-02 15:04:05"
