// Package model defines the data structures shared by the client, the CLI, and the
// reference server. These structs mirror the wire format exactly — the `json:"..."`
// struct tags are the contract, so changing a tag here changes the API.
package model

import (
	"fmt"
	"strings"
)

// DescriptionType is the kind of description being generated or stored.
// The set is closed: every endpoint rejects anything outside it.
type DescriptionType string

const (
	TypeGuitar  DescriptionType = "guitar"
	TypeCompany DescriptionType = "company"
)

// Valid reports whether t is one of the known description types.
func (t DescriptionType) Valid() bool {
	return t == TypeGuitar || t == TypeCompany
}

// ParseDescriptionType normalises and validates a user-supplied type string.
func ParseDescriptionType(s string) (DescriptionType, error) {
	t := DescriptionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown description type %q (want %q or %q)", s, TypeGuitar, TypeCompany)
	}
	return t, nil
}
