package media

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// BridgeTransport is a Transport whose rooms mirror the state reported by
// the browser client over REST. The server never opens its own RTC
// connection; it keeps the authoritative view of the room instead.
type BridgeTransport struct{}

func NewBridgeTransport() *BridgeTransport {
	return &BridgeTransport{}
}

func (t *BridgeTransport) Connect(ctx context.Context, creds Credentials) (Room, error) {
	if creds.RoomName == "" {
		return nil, fmt.Errorf("room name is required")
	}
	return &BridgeRoom{
		name: creds.RoomName,
		subs: make(map[string]*bridgeSubscription),
	}, nil
}

// BridgeRoom tracks microphone state and track subscriptions for one room.
type BridgeRoom struct {
	mu         sync.Mutex
	name       string
	micEnabled bool
	closed     bool
	subs       map[string]*bridgeSubscription
}

func (r *BridgeRoom) Name() string {
	return r.name
}

func (r *BridgeRoom) SetMicrophoneEnabled(enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("room %s is disconnected", r.name)
	}
	r.micEnabled = enabled
	return nil
}

func (r *BridgeRoom) MicrophoneEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.micEnabled
}

func (r *BridgeRoom) Subscribe(participantId string, kind TrackKind) (Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, fmt.Errorf("room %s is disconnected", r.name)
	}
	sub := &bridgeSubscription{
		sid:  uuid.NewString(),
		kind: kind,
		room: r,
	}
	r.subs[sub.sid] = sub
	return sub, nil
}

// Disconnect releases every open subscription and marks the room closed.
func (r *BridgeRoom) Disconnect() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.micEnabled = false
	for sid := range r.subs {
		delete(r.subs, sid)
	}
	return nil
}

// OpenSubscriptions reports how many track subscriptions are still held.
func (r *BridgeRoom) OpenSubscriptions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

type bridgeSubscription struct {
	sid  string
	kind TrackKind
	room *BridgeRoom
}

func (s *bridgeSubscription) Sid() string {
	return s.sid
}

func (s *bridgeSubscription) Kind() TrackKind {
	return s.kind
}

func (s *bridgeSubscription) Close() error {
	s.room.mu.Lock()
	defer s.room.mu.Unlock()
	delete(s.room.subs, s.sid)
	return nil
}
