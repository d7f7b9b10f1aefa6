package app

import (
	"encoding/json"

	"github.com/baiyu/pjexam/internal/bank"
	"github.com/baiyu/pjexam/internal/config"
	"github.com/baiyu/pjexam/internal/store"
)

// persistedSettings is the stored subset of config.Settings; mode is a
// per-session choice and never persisted.
type persistedSettings struct {
	Counts         config.Counts        `json:"counts"`
	ShuffleOptions bool                 `json:"shuffleOptions"`
	RapidMode      bool                 `json:"rapidMode"`
	DarkMode       bool                 `json:"darkMode"`
	Tasting        config.TastingFields `json:"tasting"`
}

// loadSettings returns the stored settings, falling back to defaults for
// a missing or unreadable record.
func loadSettings(st *store.Store) config.Settings {
	defaults := config.DefaultSettings(config.ModePractice, bankCounts())

	raw, ok, err := st.Get(store.KeySettings)
	if err != nil || !ok {
		return defaults
	}
	var p persistedSettings
	if err := json.Unmarshal(raw, &p); err != nil {
		return defaults
	}

	defaults.Counts = p.Counts
	defaults.ShuffleOptions = p.ShuffleOptions
	defaults.RapidMode = p.RapidMode
	defaults.DarkMode = p.DarkMode
	defaults.Tasting = p.Tasting
	return defaults
}

// saveSettings persists the adjustable settings, best-effort.
func saveSettings(st *store.Store, cfg config.Settings) {
	raw, err := json.Marshal(persistedSettings{
		Counts:         cfg.Counts,
		ShuffleOptions: cfg.ShuffleOptions,
		RapidMode:      cfg.RapidMode,
		DarkMode:       cfg.DarkMode,
		Tasting:        cfg.Tasting,
	})
	if err != nil {
		return
	}
	_ = st.Put(store.KeySettings, raw)
}

// bankCounts reports the per-type supply of the embedded bank, the
// default practice composition.
func bankCounts() config.Counts {
	qs, err := bank.Questions()
	if err != nil {
		return config.Counts{}
	}
	byType := bank.CountByType(qs)
	return config.Counts{
		Boolean:  byType[bank.TypeBoolean],
		Single:   byType[bank.TypeSingle],
		Multiple: byType[bank.TypeMultiple],
	}
}
