package audit

import (
	"context"
	"sync"

	"clausecheck/pkg/platform/sentinel"
)

// Store is the append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
}

// MemoryStore keeps events in memory; the default sink for single-process
// deployments and tests.
type MemoryStore struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

// ChannelStore hands appends to a channel for a background Worker to persist,
// keeping emit off the request path. Reads go to the backing store the worker
// writes to. A full inbox drops the event rather than blocking the request.
type ChannelStore struct {
	inbox   chan<- Event
	backing Store
}

func NewChannelStore(inbox chan<- Event, backing Store) *ChannelStore {
	return &ChannelStore{inbox: inbox, backing: backing}
}

func (s *ChannelStore) Append(_ context.Context, event Event) error {
	select {
	case s.inbox <- event:
		return nil
	default:
		return sentinel.ErrUnavailable
	}
}

func (s *ChannelStore) List(ctx context.Context) ([]Event, error) {
	return s.backing.List(ctx)
}
