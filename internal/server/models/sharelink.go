package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskcal/internal/common"
)

// ShareType selects how a shared calendar is rendered.
type ShareType string

const (
	// ShareSnapshot renders a detached copy with identifiers stripped.
	ShareSnapshot ShareType = "snapshot"
	// ShareLive renders the owner's records as they are.
	ShareLive ShareType = "live"
)

// ParseShareType validates s as snapshot or live.
func ParseShareType(s string) (ShareType, error) {
	switch t := ShareType(s); t {
	case ShareSnapshot, ShareLive:
		return t, nil
	}
	return "", fmt.Errorf("%w: type must be snapshot or live", common.ErrorValidation)
}

// Permission is what a share link holder may do.
type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

// ParsePermission validates s as view or edit.
func ParsePermission(s string) (Permission, error) {
	switch p := Permission(s); p {
	case PermissionView, PermissionEdit:
		return p, nil
	}
	return "", fmt.Errorf("%w: permission must be view or edit", common.ErrorValidation)
}

// ShareLink grants read access to every entry of OwnerID to whoever holds
// Token. ExpiresAt is recorded but not enforced.
type ShareLink struct {
	ID         string     `json:"id"`
	Token      string     `json:"token"`
	OwnerID    string     `json:"owner"`
	Type       ShareType  `json:"type"`
	Permission Permission `json:"permission"`
	Active     bool       `json:"active"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
