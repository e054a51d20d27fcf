package setting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultSettings(t *testing.T) *Settings {
	t.Helper()
	s, err := NewSettings(42)
	require.NoError(t, err)
	return s
}

func TestNewSettings_Defaults(t *testing.T) {
	s := newDefaultSettings(t)

	assert.True(t, s.TicketUpdates())
	assert.True(t, s.EmailEnabled())
	assert.False(t, s.TelegramEnabled())
	assert.False(t, s.IsTelegramLinked())
	assert.False(t, s.IsTelegramDeliverable())
	assert.Nil(t, s.PasswordChangedAt())
}

func TestSettings_LinkTelegram(t *testing.T) {
	s := newDefaultSettings(t)

	require.NoError(t, s.LinkTelegram(123456, "alice"))
	require.True(t, s.IsTelegramLinked())
	link := s.TelegramLink()
	require.NotNil(t, link)
	assert.Equal(t, int64(123456), link.ChatID)
	assert.Equal(t, "alice", link.Username)
	assert.False(t, link.LinkedAt.IsZero())

	// Linking while linked is rejected.
	err := s.LinkTelegram(999, "bob")
	assert.ErrorIs(t, err, ErrAlreadyLinked)
	assert.Equal(t, int64(123456), s.TelegramLink().ChatID)

	// Zero chat ID is never accepted.
	s2 := newDefaultSettings(t)
	assert.Error(t, s2.LinkTelegram(0, "alice"))
}

func TestSettings_UnlinkTelegram(t *testing.T) {
	s := newDefaultSettings(t)

	assert.ErrorIs(t, s.UnlinkTelegram(), ErrNotLinked)

	require.NoError(t, s.LinkTelegram(123456, "alice"))
	s.SetTelegramEnabled(true)
	require.True(t, s.IsTelegramDeliverable())

	require.NoError(t, s.UnlinkTelegram())
	assert.False(t, s.IsTelegramLinked())
	// Unlinking also drops the toggle.
	assert.False(t, s.TelegramEnabled())

	// Relinking after unlink starts a fresh link.
	require.NoError(t, s.LinkTelegram(777, "alice2"))
	assert.Equal(t, int64(777), s.TelegramLink().ChatID)
}

func TestSettings_IsTelegramDeliverable(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		linked  bool
		want    bool
	}{
		{name: "enabled and linked", enabled: true, linked: true, want: true},
		{name: "enabled but unlinked", enabled: true, linked: false, want: false},
		{name: "linked but disabled", enabled: false, linked: true, want: false},
		{name: "neither", enabled: false, linked: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newDefaultSettings(t)
			if tt.linked {
				require.NoError(t, s.LinkTelegram(1, "u"))
			}
			s.SetTelegramEnabled(tt.enabled)
			assert.Equal(t, tt.want, s.IsTelegramDeliverable())
		})
	}
}

func TestReconstructSettings_LinkInvariant(t *testing.T) {
	now := time.Now().UTC()

	_, err := ReconstructSettings(1, 42, true, true, true, &TelegramLink{ChatID: 0}, nil, 1, now, now)
	assert.Error(t, err)

	s, err := ReconstructSettings(1, 42, true, true, true, &TelegramLink{ChatID: 5, Username: "u", LinkedAt: now}, nil, 1, now, now)
	require.NoError(t, err)
	assert.True(t, s.IsTelegramDeliverable())
}

func TestSettings_RecordPasswordChange(t *testing.T) {
	s := newDefaultSettings(t)
	require.Nil(t, s.PasswordChangedAt())

	s.RecordPasswordChange()
	require.NotNil(t, s.PasswordChangedAt())
}

func TestSettings_TelegramLinkReturnsCopy(t *testing.T) {
	s := newDefaultSettings(t)
	require.NoError(t, s.LinkTelegram(123, "alice"))

	link := s.TelegramLink()
	link.ChatID = 999

	assert.Equal(t, int64(123), s.TelegramLink().ChatID)
}
