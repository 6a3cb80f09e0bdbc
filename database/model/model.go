// Package model declares the record shapes and entity schemas the SGI panel
// stores: the five business catalogs plus the user-access table.
package model

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Record is an open mapping from attribute name to scalar value. Attribute
// names follow the storage convention (uppercase). Access goes through an
// EntitySchema; callers never invent attribute names.
type Record = map[string]any

// Roles and statuses form closed sets. Unrecognized input collapses to the
// default, never passes through.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"

	StatusActive   = "ACTIVO"
	StatusInactive = "INACTIVO"
)

// AdminUsername is the well-known seeded master account. The panel refuses
// to delete it.
const AdminUsername = "ADMIN"

// CredentialRecord is the canonical account shape. Dual-cased wire input is
// normalized into this struct at the boundary and never carried further.
type CredentialRecord struct {
	Id           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Sanitized returns a copy safe to hand outward: the hash never leaves the
// backend boundary.
func (c CredentialRecord) Sanitized() CredentialRecord {
	c.PasswordHash = ""
	return c
}

var upperCaser = cases.Upper(language.Und)

// NormalizeUsername trims surrounding whitespace and folds the username to
// the single canonical case used for storage, lookup and uniqueness.
func NormalizeUsername(username string) string {
	return upperCaser.String(strings.TrimSpace(username))
}

// NormalizeRole collapses role input into the closed {ADMIN, USER} set.
func NormalizeRole(role string) string {
	if upperCaser.String(strings.TrimSpace(role)) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// NormalizeStatus collapses status input into the closed {ACTIVO, INACTIVO}
// set. It accepts the English aliases the web client sends.
func NormalizeStatus(status string) string {
	switch upperCaser.String(strings.TrimSpace(status)) {
	case StatusInactive, "INACTIVE":
		return StatusInactive
	default:
		return StatusActive
	}
}
