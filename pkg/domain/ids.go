package domain

import (
	"github.com/google/uuid"

	dErrors "fundguard/pkg/domain-errors"
)

// Typed UUID wrappers for the entities the platform tracks. Distinct types
// prevent accidentally passing a campaign ID where a user ID is expected;
// the compiler enforces the distinction.
type (
	UserID     uuid.UUID
	CampaignID uuid.UUID
)

// parseUUID enforces the shared invariant: IDs must be valid, non-nil UUIDs.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is not a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be the nil UUID")
	}
	return parsed, nil
}

// ParseUserID constructs a UserID from external input.
// Construct via Parse at trust boundaries; direct casting bypasses validation.
func ParseUserID(s string) (UserID, error) {
	parsed, err := parseUUID(s, "user id")
	if err != nil {
		return UserID{}, err
	}
	return UserID(parsed), nil
}

// ParseCampaignID constructs a CampaignID from external input.
func ParseCampaignID(s string) (CampaignID, error) {
	parsed, err := parseUUID(s, "campaign id")
	if err != nil {
		return CampaignID{}, err
	}
	return CampaignID(parsed), nil
}

// NewCampaignID returns a fresh random campaign ID.
func NewCampaignID() CampaignID {
	return CampaignID(uuid.New())
}

func (id UserID) String() string     { return uuid.UUID(id).String() }
func (id CampaignID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id CampaignID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
