// Package prefs stores small per-user state as JSON under the user config
// directory. Achievements live here rather than in the database: they are a
// handful of flags, and wiping the database must not revoke them.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jask/moneylens/internal/ledger"
)

const achievementsFile = "achievements.json"

func achievementsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "moneylens")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, achievementsFile), nil
}

func SaveAchievements(achs []ledger.Achievement) error {
	path, err := achievementsPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(achs, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadAchievements returns the stored set, falling back to the locked
// defaults when nothing has been saved yet.
func LoadAchievements() ([]ledger.Achievement, error) {
	path, err := achievementsPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ledger.DefaultAchievements(), nil
		}
		return nil, err
	}
	var achs []ledger.Achievement
	if err := json.Unmarshal(data, &achs); err != nil {
		return nil, err
	}
	if len(achs) == 0 {
		return ledger.DefaultAchievements(), nil
	}
	return achs, nil
}
