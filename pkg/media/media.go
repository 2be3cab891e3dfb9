package media

import (
	"context"
	"time"
)

type TrackKind string

const (
	TrackAudio TrackKind = "audio"
	TrackVideo TrackKind = "video"
)

// Participant identities used inside intake rooms.
const (
	IdentityAvatar  = "avatar"
	IdentityCitizen = "citizen"
)

// Credentials is everything a client needs to join an intake room.
type Credentials struct {
	ServerURL string    `json:"server_url"`
	RoomName  string    `json:"room_name"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Subscription is a live handle to a remote track. Closing it releases
// the server-side bookkeeping for that track.
type Subscription interface {
	Sid() string
	Kind() TrackKind
	Close() error
}

// Room is a joined media room as seen by this server.
type Room interface {
	Name() string
	SetMicrophoneEnabled(enabled bool) error
	MicrophoneEnabled() bool
	Subscribe(participantId string, kind TrackKind) (Subscription, error)
	Disconnect() error
}

// Transport establishes rooms against the media server.
type Transport interface {
	Connect(ctx context.Context, creds Credentials) (Room, error)
}
