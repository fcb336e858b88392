package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/service"
)

// RegisterRequest is the body of POST /auth/register. Role defaults to customer.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=customer provider"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest is the body of POST /auth/refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	UserID       uuid.UUID   `json:"user_id"`
	Role         domain.Role `json:"role"`
	AccessToken  string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresAt    string      `json:"expires_at"` // RFC 3339
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// RegisterProviderRequest is the body of POST /providers.
type RegisterProviderRequest struct {
	Services       string `json:"services"         validate:"required,max=100"`
	Experience     int    `json:"experience"       validate:"gte=0,lte=100"`
	Pincode        string `json:"location_pincode" validate:"required,max=20"`
	ContactInfo    string `json:"contact_info"     validate:"required,max=200"`
	ProfilePicture string `json:"profile_picture"  validate:"omitempty,url,max=2048"`
}

// ProviderResponse is the public view of a provider profile.
type ProviderResponse struct {
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
}

// CreateBookingRequest is the body of POST /bookings.
type CreateBookingRequest struct {
	ProviderID string    `json:"provider_id" validate:"required,uuid"`
	DateTime   time.Time `json:"date_time"   validate:"required"`
}

// UpdateBookingStatusRequest is the body of PATCH /bookings/{id}/status.
// Allowed targets are checked by the service so that "pending" is reported
// as an invalid transition rather than a malformed request.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// BookingResponse is the view of a booking returned to its participants.
type BookingResponse struct {
	ID         uuid.UUID            `json:"id"`
	CustomerID uuid.UUID            `json:"customer_id"`
	ProviderID uuid.UUID            `json:"provider_id"`
	DateTime   time.Time            `json:"date_time"`
	Status     domain.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// SubmitReviewRequest is the body of POST /reviews. Rating bounds are
// checked by the service after ownership and booking state.
type SubmitReviewRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// ReviewResponse is a stored review.
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"booking_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubmitReviewResponse adds the provider's updated aggregate.
type SubmitReviewResponse struct {
	ReviewResponse
	ProviderRatingAvg   float64 `json:"provider_rating_avg"`
	ProviderRatingCount int     `json:"provider_rating_count"`
}

// VerificationRequest is the body of POST /admin/providers/{id}/verification.
type VerificationRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

func toAuthResponse(s *service.Session) AuthResponse {
	return AuthResponse{
		UserID:       s.User.ID,
		Role:         s.User.Role,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt.Format(time.RFC3339),
	}
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

func toProviderResponse(p *domain.ProviderProfile) ProviderResponse {
	return ProviderResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Services:        p.Services,
		Experience:      p.Experience,
		LocationPincode: p.LocationPincode,
		ContactInfo:     p.ContactInfo,
		ProfilePicture:  p.ProfilePicture,
		Verified:        p.Verified,
		RatingAvg:       p.RatingAvg,
		RatingCount:     p.RatingCount,
		CreatedAt:       p.CreatedAt,
	}
}

func toProviderResponses(list []*domain.ProviderProfile) []ProviderResponse {
	out := make([]ProviderResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProviderResponse(p))
	}
	return out
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		CustomerID: b.CustomerID,
		ProviderID: b.ProviderID,
		DateTime:   b.DateTime,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func toReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		BookingID:  r.BookingID,
		ProviderID: r.ProviderID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}
