package domain

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of an AMA record.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

func (s *Status) UnmarshalText(b []byte) error {
	return parseEnum(b, s, StatusActive, StatusInactive)
}

type Country string

const (
	CountryCA Country = "CA"
	CountryUS Country = "US"
)

func (c *Country) UnmarshalText(b []byte) error {
	return parseEnum(b, c, CountryCA, CountryUS)
}

type UserType string

const (
	UserTypeAdmin     UserType = "Admin"
	UserTypeAssociate UserType = "Associate"
)

func (t *UserType) UnmarshalText(b []byte) error {
	return parseEnum(b, t, UserTypeAdmin, UserTypeAssociate)
}

type UserStatus string

const (
	UserStatusActive     UserStatus = "Active"
	UserStatusResigned   UserStatus = "Resigned"
	UserStatusTerminated UserStatus = "Terminated"
	UserStatusInactive   UserStatus = "Inactive"
)

func (s *UserStatus) UnmarshalText(b []byte) error {
	return parseEnum(b, s, UserStatusActive, UserStatusResigned, UserStatusTerminated, UserStatusInactive)
}

func (s UserStatus) IsActive() bool { return s == UserStatusActive }

// parseEnum matches b case-insensitively against allowed and stores the
// canonical spelling.
func parseEnum[T ~string](b []byte, dst *T, allowed ...T) error {
	v := strings.TrimSpace(string(b))
	for _, a := range allowed {
		if strings.EqualFold(v, string(a)) {
			*dst = a
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return fmt.Errorf("unknown value %q, expected one of %s", v, strings.Join(names, ", "))
}
