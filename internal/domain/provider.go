package domain

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors for ProviderProfile
var (
	ErrEmptyProviderID     = NewValidationError("id", "cannot be empty", ErrInvalidID)
	ErrEmptyProviderUserID = NewValidationError("user_id", "cannot be empty", ErrInvalidID)
	ErrEmptyServices       = NewValidationError("services", "cannot be empty", nil)
	ErrNegativeExperience  = NewValidationError("experience", "cannot be negative", nil)
	ErrEmptyPincode        = NewValidationError("location_pincode", "cannot be empty", nil)
	ErrEmptyContactInfo    = NewValidationError("contact_info", "cannot be empty", nil)
	ErrInvalidPictureURL   = NewValidationError("profile_picture", "must be an http(s) URL", nil)
)

// ProviderProfile is the public listing of a provider user. It is only
// discoverable and bookable once an admin has verified it.
type ProviderProfile struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Services        string    `json:"services"`
	Experience      int       `json:"experience"`
	LocationPincode string    `json:"location_pincode"`
	ContactInfo     string    `json:"contact_info"`
	ProfilePicture  string    `json:"profile_picture,omitempty"`
	Verified        bool      `json:"verified"`
	RatingAvg       float64   `json:"rating_avg"`
	RatingCount     int       `json:"rating_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewProviderProfile creates an unverified profile with no ratings.
func NewProviderProfile(
	userID uuid.UUID,
	services string,
	experience int,
	pincode string,
	contactInfo string,
	profilePicture string,
) (*ProviderProfile, error) {
	now := time.Now().UTC()
	p := &ProviderProfile{
		ID:              uuid.New(),
		UserID:          userID,
		Services:        strings.TrimSpace(services),
		Experience:      experience,
		LocationPincode: strings.TrimSpace(pincode),
		ContactInfo:     strings.TrimSpace(contactInfo),
		ProfilePicture:  strings.TrimSpace(profilePicture),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the ProviderProfile has valid data.
func (p *ProviderProfile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProviderID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyProviderUserID
	}
	if p.Services == "" {
		return ErrEmptyServices
	}
	if p.Experience < 0 {
		return ErrNegativeExperience
	}
	if p.LocationPincode == "" {
		return ErrEmptyPincode
	}
	if p.ContactInfo == "" {
		return ErrEmptyContactInfo
	}
	if p.ProfilePicture != "" {
		u, err := url.Parse(p.ProfilePicture)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidPictureURL
		}
	}
	return nil
}

// VisibleTo reports whether a caller may see this profile. Unverified
// profiles are only visible to their owner and to admins.
func (p *ProviderProfile) VisibleTo(userID uuid.UUID, role Role) bool {
	if p.Verified {
		return true
	}
	return role == RoleAdmin || (userID != uuid.Nil && userID == p.UserID)
}

// ProviderSort selects the ordering of provider listings.
type ProviderSort string

// Supported orderings. Ties are always broken by id ascending.
const (
	SortByRating     ProviderSort = "rating"
	SortByExperience ProviderSort = "experience"
)

// Listing limits
const (
	DefaultProviderPageSize = 50
	MaxProviderPageSize     = 100
)

// ProviderFilter narrows a provider listing. Empty fields match everything.
type ProviderFilter struct {
	Category string
	Pincode  string
	SortBy   ProviderSort
	Limit    int
	Offset   int
}

// Normalize fills defaults and rejects values outside the supported range.
func (f ProviderFilter) Normalize() (ProviderFilter, error) {
	f.Category = strings.TrimSpace(f.Category)
	f.Pincode = strings.TrimSpace(f.Pincode)

	switch f.SortBy {
	case "":
		f.SortBy = SortByRating
	case SortByRating, SortByExperience:
	default:
		return f, NewValidationError("sort_by", "must be rating or experience", nil)
	}

	if f.Limit < 0 || f.Limit > MaxProviderPageSize {
		return f, NewValidationError("limit", "must be between 1 and 100", nil)
	}
	if f.Limit == 0 {
		f.Limit = DefaultProviderPageSize
	}
	if f.Offset < 0 {
		return f, NewValidationError("offset", "cannot be negative", nil)
	}

	return f, nil
}
