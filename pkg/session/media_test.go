package session

import (
	"context"
	"testing"

	"legal-intake-be/pkg/media"

	"github.com/stretchr/testify/assert"
)

func newConnectedController(t *testing.T) (*MediaController, *media.BridgeRoom) {
	t.Helper()
	transport := media.NewBridgeTransport()
	ctrl := NewMediaController(transport, noopLogger{})
	err := ctrl.Connect(context.Background(), media.Credentials{RoomName: "intake-case-1"})
	assert.NoError(t, err)

	room, ok := currentRoom(ctrl).(*media.BridgeRoom)
	assert.True(t, ok)
	return ctrl, room
}

func currentRoom(c *MediaController) media.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func TestAutoUnmuteOnAvatarConnectFiresOnce(t *testing.T) {
	ctrl, _ := newConnectedController(t)

	assert.True(t, ctrl.IsMuted(), "session starts muted")

	ctrl.HandleAvatarConnected()
	assert.False(t, ctrl.IsMuted(), "first avatar arrival unmutes")
	assert.True(t, ctrl.MicrophoneEnabled())

	// Manual mute right after must be preserved across a reconnect
	ctrl.SetMuted(true)
	ctrl.HandleAvatarDisconnected()
	ctrl.HandleAvatarConnected()
	assert.True(t, ctrl.IsMuted(), "manual mute must not be overridden")
	assert.False(t, ctrl.MicrophoneEnabled())
}

func TestMuteToggleNoopWithoutAvatar(t *testing.T) {
	ctrl, _ := newConnectedController(t)

	ctrl.ToggleMute()
	assert.True(t, ctrl.IsMuted(), "toggle before avatar joins is a no-op")

	ctrl.HandleAvatarConnected()
	ctrl.ToggleMute()
	assert.True(t, ctrl.IsMuted())
	ctrl.ToggleMute()
	assert.False(t, ctrl.IsMuted())
}

func TestSpaceShortcutSuppressedInTextInput(t *testing.T) {
	ctrl, _ := newConnectedController(t)
	ctrl.HandleAvatarConnected()
	assert.False(t, ctrl.IsMuted())

	ctrl.HandleShortcut(" ", true)
	assert.False(t, ctrl.IsMuted(), "shortcut inside a text input is ignored")

	ctrl.HandleShortcut(" ", false)
	assert.True(t, ctrl.IsMuted())

	ctrl.HandleShortcut("Enter", false)
	assert.True(t, ctrl.IsMuted(), "only space toggles")
}

func TestDisconnectReleasesAllSubscriptions(t *testing.T) {
	ctrl, room := newConnectedController(t)

	ctrl.HandleAvatarConnected()
	assert.Equal(t, 2, room.OpenSubscriptions(), "audio and video tracks subscribed")

	assert.NoError(t, ctrl.Disconnect())
	assert.Equal(t, 0, room.OpenSubscriptions())
	assert.False(t, ctrl.IsConnected())
	assert.False(t, ctrl.IsAvatarConnected())

	// Repeated disconnect stays safe
	assert.NoError(t, ctrl.Disconnect())
}

func TestSpeakingSignals(t *testing.T) {
	ctrl, _ := newConnectedController(t)
	ctrl.HandleAvatarConnected()

	ctrl.HandleSpeakingChanged(media.IdentityAvatar, true)
	assert.True(t, ctrl.Speaking(media.IdentityAvatar))
	assert.False(t, ctrl.Speaking(media.IdentityCitizen))

	ctrl.HandleSpeakingChanged(media.IdentityCitizen, true)
	ctrl.HandleSpeakingChanged(media.IdentityAvatar, false)
	assert.False(t, ctrl.Speaking(media.IdentityAvatar))
	assert.True(t, ctrl.Speaking(media.IdentityCitizen))
}
