package stores

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

// GeneralSettings describes the pharmacy itself
type GeneralSettings struct {
	PharmacyName  string `json:"pharmacy_name"`
	LicenseNumber string `json:"license_number"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
}

// NotificationSettings toggles alert kinds and channels
type NotificationSettings struct {
	LowStock      bool `json:"low_stock"`
	Expiry        bool `json:"expiry"`
	EPrescription bool `json:"e_prescription"`
	Refill        bool `json:"refill"`
	SystemUpdates bool `json:"system_updates"`
	Email         bool `json:"email"`
	Push          bool `json:"push"`
	InApp         bool `json:"in_app"`
}

// ProfileSettings are workstation preferences
type ProfileSettings struct {
	DarkMode       bool `json:"dark_mode"`
	SessionTimeout int  `json:"session_timeout"`
}

// Settings is the whole settings document
type Settings struct {
	General       GeneralSettings      `json:"general"`
	Notifications NotificationSettings `json:"notifications"`
	Profile       ProfileSettings      `json:"profile"`
}

// DefaultSettings returns the settings of a fresh install
func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{
			PharmacyName:  "RxNexus Pharmacy",
			LicenseNumber: "PL-2025-00123",
			Email:         "contact@rxnexus.com",
			Phone:         "1234567890",
			Address:       "Illahi Bagh",
			City:          "Srinagar",
			State:         "Jammu & Kashmir",
			ZipCode:       "190020",
		},
		Notifications: NotificationSettings{
			LowStock:      true,
			Expiry:        true,
			EPrescription: true,
			Refill:        true,
			SystemUpdates: true,
			Email:         true,
			Push:          true,
			InApp:         true,
		},
		Profile: ProfileSettings{
			DarkMode:       false,
			SessionTimeout: 30,
		},
	}
}

// SettingsStore holds the local settings document
type SettingsStore struct {
	mu    sync.RWMutex
	cur   Settings
	snaps ports.SnapshotStore
}

// NewSettings restores the settings snapshot over the defaults
func NewSettings(snaps ports.SnapshotStore) *SettingsStore {
	s := &SettingsStore{cur: DefaultSettings(), snaps: snaps}
	restore(snaps, ports.SnapshotSettings, &s.cur)
	return s
}

// Get returns the current settings
func (s *SettingsStore) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// UpdateGeneral merges a partial JSON object into the general section.
// Fields absent from patch keep their value.
func (s *SettingsStore) UpdateGeneral(patch []byte) (GeneralSettings, error) {
	var out GeneralSettings
	err := s.merge(func(cur *Settings) error {
		if err := json.Unmarshal(patch, &cur.General); err != nil {
			return err
		}
		out = cur.General
		return nil
	})
	return out, err
}

// UpdateNotifications merges a partial JSON object into the notification toggles
func (s *SettingsStore) UpdateNotifications(patch []byte) (NotificationSettings, error) {
	var out NotificationSettings
	err := s.merge(func(cur *Settings) error {
		if err := json.Unmarshal(patch, &cur.Notifications); err != nil {
			return err
		}
		out = cur.Notifications
		return nil
	})
	return out, err
}

// UpdateProfile merges a partial JSON object into the profile preferences
func (s *SettingsStore) UpdateProfile(patch []byte) (ProfileSettings, error) {
	var out ProfileSettings
	err := s.merge(func(cur *Settings) error {
		if err := json.Unmarshal(patch, &cur.Profile); err != nil {
			return err
		}
		if cur.Profile.SessionTimeout < 0 {
			return fmt.Errorf("session_timeout must not be negative")
		}
		out = cur.Profile
		return nil
	})
	return out, err
}

func (s *SettingsStore) merge(apply func(*Settings) error) error {
	s.mu.Lock()
	next := s.cur
	if err := apply(&next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	s.cur = next
	s.mu.Unlock()

	persist(s.snaps, ports.SnapshotSettings, next)
	return nil
}
