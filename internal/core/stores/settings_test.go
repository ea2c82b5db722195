package stores

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/snapshot"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
)

func TestSettings_PartialUpdatesMerge(t *testing.T) {
	s := NewSettings(nil)

	general, err := s.UpdateGeneral([]byte(`{"pharmacy_name":"Dal Gate Chemists"}`))
	require.NoError(t, err)
	assert.Equal(t, "Dal Gate Chemists", general.PharmacyName)
	assert.Equal(t, "PL-2025-00123", general.LicenseNumber)

	toggles, err := s.UpdateNotifications([]byte(`{"low_stock":false}`))
	require.NoError(t, err)
	assert.False(t, toggles.LowStock)
	assert.True(t, toggles.Expiry)

	assert.Equal(t, "Dal Gate Chemists", s.Get().General.PharmacyName)
}

func TestSettings_InvalidPatchIsRejected(t *testing.T) {
	s := NewSettings(nil)

	_, err := s.UpdateProfile([]byte(`{"session_timeout":"soon"}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.UpdateProfile([]byte(`{"session_timeout":-5}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 30, s.Get().Profile.SessionTimeout)
}

func TestSettings_Snapshot(t *testing.T) {
	snaps := snapshot.NewMemory()
	s := NewSettings(snaps)
	_, err := s.UpdateProfile([]byte(`{"dark_mode":true}`))
	require.NoError(t, err)

	reopened := NewSettings(snaps)

	assert.True(t, reopened.Get().Profile.DarkMode)
	assert.Equal(t, 30, reopened.Get().Profile.SessionTimeout)
}
