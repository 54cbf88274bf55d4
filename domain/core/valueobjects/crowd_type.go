package valueobjects

import (
	"fmt"
	"strings"
)

// CrowdType is the enumerated traveler-group category used to tailor
// generation tone
type CrowdType string

const (
	CrowdSolo     CrowdType = "solo"
	CrowdCouple   CrowdType = "couple"
	CrowdFamily   CrowdType = "family"
	CrowdFriends  CrowdType = "friends"
	CrowdBusiness CrowdType = "business"
)

// DefaultCrowdType is applied when a stored record predates the crowdType
// field. Legacy records default to solo rather than failing the read.
const DefaultCrowdType = CrowdSolo

// NewCrowdTypeFromString parses a crowd type. The empty string yields
// DefaultCrowdType; any other unknown value is rejected.
func NewCrowdTypeFromString(s string) (CrowdType, error) {
	if s == "" {
		return DefaultCrowdType, nil
	}

	ct := CrowdType(strings.ToLower(strings.TrimSpace(s)))
	if !ct.IsValid() {
		return "", fmt.Errorf("invalid crowd type %q", s)
	}
	return ct, nil
}

// IsValid reports whether the crowd type is one of the known categories
func (c CrowdType) IsValid() bool {
	switch c {
	case CrowdSolo, CrowdCouple, CrowdFamily, CrowdFriends, CrowdBusiness:
		return true
	}
	return false
}

// String returns the string representation of the crowd type
func (c CrowdType) String() string {
	return string(c)
}

// Phrase renders the crowd type as natural traveler-profile phrasing for
// prompt text
func (c CrowdType) Phrase() string {
	switch c {
	case CrowdSolo:
		return "a solo traveler"
	case CrowdCouple:
		return "a couple"
	case CrowdFamily:
		return "a family including children"
	case CrowdFriends:
		return "a group of friends"
	case CrowdBusiness:
		return "a business traveler"
	default:
		return "a traveler"
	}
}
