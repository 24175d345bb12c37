package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Detection run defaults
	DefaultTickMillis    int     `json:"default_tick_millis"`    // Interval between simulated probe results
	DefaultQualifiedRate float64 `json:"default_qualified_rate"` // Probability a probed hole qualifies (0..1)
	DefaultBlindRate     float64 `json:"default_blind_rate"`     // Probability a probed hole is blind (0..1)

	// Display preferences
	OverlayRadiusFactor float64 `json:"overlay_radius_factor"` // Wedge radius as a fraction of plate half-diagonal
	ShowSectorLabels    bool    `json:"show_sector_labels"`

	// Application preferences
	RecentFiles []string `json:"recent_files"`
	Theme       string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultTickMillis:    50,
		DefaultQualifiedRate: 0.95,
		DefaultBlindRate:     0.01,
		OverlayRadiusFactor:  1.0,
		ShowSectorLabels:     true,
		RecentFiles:          []string{},
		Theme:                "system",
	}
}

// AddRecentFile prepends a path to the recent files list, dropping
// duplicates and keeping at most max entries.
func (c *AppConfig) AddRecentFile(path string, max int) {
	files := []string{path}
	for _, f := range c.RecentFiles {
		if f != path && len(files) < max {
			files = append(files, f)
		}
	}
	c.RecentFiles = files
}
