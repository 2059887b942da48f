package model

import (
	"strings"
	"time"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User is an application account. Password is only ever sent, the backend never returns it.
type User struct {
	ID        int64     `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	CreatedOn time.Time `json:"createdOn"`
	MobileNo  int64     `json:"mobileNo"`
	Role      []string  `json:"role"`
}

// HasRole reports whether the user holds the named role
func (u User) HasRole(role string) bool {
	for _, r := range u.Role {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
