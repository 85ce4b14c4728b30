package prefs

import (
	"testing"
	"time"

	"github.com/jask/moneylens/internal/ledger"
)

func TestLoadAchievementsDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	got, err := LoadAchievements()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := ledger.DefaultAchievements()
	if len(got) != len(want) {
		t.Fatalf("defaults = %d entries, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].Unlocked {
			t.Fatalf("default %q must start locked", got[i].Title)
		}
	}
}

func TestSaveLoadAchievementsRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	achs := ledger.DefaultAchievements()
	when := time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)
	achs[0].Unlocked = true
	achs[0].UnlockedAt = &when

	if err := SaveAchievements(achs); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadAchievements()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got[0].Unlocked {
		t.Fatal("unlock flag lost across save/load")
	}
	if got[0].UnlockedAt == nil || !got[0].UnlockedAt.Equal(when) {
		t.Fatalf("UnlockedAt = %v, want %v", got[0].UnlockedAt, when)
	}
	if got[1].Unlocked {
		t.Fatal("locked entries must stay locked")
	}
	if got[0].Requirement.Kind != ledger.RequireTransactionCount {
		t.Fatalf("requirement kind lost: %q", got[0].Requirement.Kind)
	}
}
