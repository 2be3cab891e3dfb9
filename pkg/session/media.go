package session

import (
	"context"
	"sync"

	"legal-intake-be/internal/pkg/logger"
	"legal-intake-be/pkg/media"
)

// MediaController owns the media room lifecycle, local mute state and
// avatar presence. Microphone rule: enabled iff connected AND avatar
// connected AND not muted.
type MediaController struct {
	mu        sync.Mutex
	transport media.Transport
	log       logger.ILogger

	room            media.Room
	connected       bool
	muted           bool
	avatarConnected bool
	autoUnmuted     bool
	localSpeaking   bool
	avatarSpeaking  bool
	subs            []media.Subscription

	// onAvatarPresence is notified after every presence flip, with the
	// controller unlocked.
	onAvatarPresence func(connected bool)
}

func NewMediaController(transport media.Transport, log logger.ILogger) *MediaController {
	return &MediaController{
		transport: transport,
		log:       log,
	}
}

// SetPresenceHook registers the single presence observer (the state machine).
func (c *MediaController) SetPresenceHook(hook func(connected bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAvatarPresence = hook
}

// Connect joins the room. The session starts muted; the first avatar
// arrival unmutes it.
func (c *MediaController) Connect(ctx context.Context, creds media.Credentials) error {
	room, err := c.transport.Connect(ctx, creds)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connected {
		// A stale room from a previous attempt must not leak
		c.releaseLocked()
	}
	c.room = room
	c.connected = true
	c.muted = true
	c.autoUnmuted = false
	c.avatarConnected = false
	return nil
}

// HandleAvatarConnected processes the avatar joining the room. The first
// false→true flip forces muted=false exactly once; manual toggles after
// that are never overridden.
func (c *MediaController) HandleAvatarConnected() {
	c.mu.Lock()
	if !c.connected || c.avatarConnected {
		c.mu.Unlock()
		return
	}
	c.avatarConnected = true
	if !c.autoUnmuted {
		c.muted = false
		c.autoUnmuted = true
	}

	for _, kind := range []media.TrackKind{media.TrackAudio, media.TrackVideo} {
		sub, err := c.room.Subscribe(media.IdentityAvatar, kind)
		if err != nil {
			c.log.Warn("media", "avatar track subscription failed", map[string]interface{}{
				"kind":  string(kind),
				"error": err.Error(),
			})
			continue
		}
		c.subs = append(c.subs, sub)
	}

	c.applyMicStateLocked()
	hook := c.onAvatarPresence
	c.mu.Unlock()

	if hook != nil {
		hook(true)
	}
}

// HandleAvatarDisconnected processes the avatar leaving.
func (c *MediaController) HandleAvatarDisconnected() {
	c.mu.Lock()
	if !c.avatarConnected {
		c.mu.Unlock()
		return
	}
	c.avatarConnected = false
	c.avatarSpeaking = false
	for _, sub := range c.subs {
		if err := sub.Close(); err != nil {
			c.log.Warn("media", "failed to release avatar subscription", map[string]interface{}{
				"sid":   sub.Sid(),
				"error": err.Error(),
			})
		}
	}
	c.subs = nil
	c.applyMicStateLocked()
	hook := c.onAvatarPresence
	c.mu.Unlock()

	if hook != nil {
		hook(false)
	}
}

// SetMuted sets the manual mute flag. A no-op while the avatar has not
// joined yet.
func (c *MediaController) SetMuted(muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected || !c.avatarConnected {
		return
	}
	c.muted = muted
	c.applyMicStateLocked()
}

func (c *MediaController) ToggleMute() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected || !c.avatarConnected {
		return
	}
	c.muted = !c.muted
	c.applyMicStateLocked()
}

// HandleShortcut processes a keyboard shortcut. Space toggles mute, but is
// suppressed while focus sits inside a text input.
func (c *MediaController) HandleShortcut(key string, focusInInput bool) {
	if key != " " && key != "Space" {
		return
	}
	if focusInInput {
		return
	}
	c.ToggleMute()
}

// HandleSpeakingChanged records a speaking-activity signal.
func (c *MediaController) HandleSpeakingChanged(identity string, speaking bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch identity {
	case media.IdentityAvatar:
		c.avatarSpeaking = speaking
	default:
		c.localSpeaking = speaking
	}
}

// Disconnect releases every subscription and the room. Safe on every exit
// path, including error unwinding and repeated calls.
func (c *MediaController) Disconnect() error {
	c.mu.Lock()
	err := c.releaseLocked()
	wasAvatar := c.avatarConnected
	c.connected = false
	c.avatarConnected = false
	c.avatarSpeaking = false
	c.localSpeaking = false
	hook := c.onAvatarPresence
	c.mu.Unlock()

	if wasAvatar && hook != nil {
		hook(false)
	}
	return err
}

// releaseLocked closes all subscriptions and the room, keeping the first
// error. Caller holds c.mu.
func (c *MediaController) releaseLocked() error {
	var firstErr error
	for _, sub := range c.subs {
		if err := sub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.subs = nil
	if c.room != nil {
		if err := c.room.Disconnect(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.room = nil
	}
	return firstErr
}

func (c *MediaController) applyMicStateLocked() {
	if c.room == nil {
		return
	}
	enabled := c.connected && c.avatarConnected && !c.muted
	if err := c.room.SetMicrophoneEnabled(enabled); err != nil {
		c.log.Warn("media", "failed to apply microphone state", map[string]interface{}{
			"enabled": enabled,
			"error":   err.Error(),
		})
	}
}

func (c *MediaController) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *MediaController) IsMuted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

func (c *MediaController) IsAvatarConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.avatarConnected
}

// MicrophoneEnabled reports the derived microphone state.
func (c *MediaController) MicrophoneEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected && c.avatarConnected && !c.muted
}

// Speaking reports the last known speaking activity for a participant.
func (c *MediaController) Speaking(identity string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if identity == media.IdentityAvatar {
		return c.avatarSpeaking
	}
	return c.localSpeaking
}
