package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/events"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func principal(role domain.Role) domain.Principal {
	return domain.Principal{UserID: uuid.New(), Role: role}
}

// recordingEmitter collects emitted events.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.Event
	err    error
}

func (r *recordingEmitter) EmitEvent(_ context.Context, e *events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingEmitter) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func verifiedProvider(userID uuid.UUID) *domain.ProviderProfile {
	return &domain.ProviderProfile{
		ID:              uuid.New(),
		UserID:          userID,
		Services:        "plumbing",
		Experience:      5,
		LocationPincode: "110001",
		ContactInfo:     "555-0100",
		Verified:        true,
	}
}
