package models

// ReadingHabits holds the questionnaire-style reading preferences that feed
// the interpretation prompt. Values are the answer codes from the onboarding
// questionnaire.
type ReadingHabits struct {
	PreparationLevel    string   `json:"preparation_level"`
	ReadingPurpose      string   `json:"reading_purpose"`
	ReadingTime         string   `json:"reading_time"`
	InterpretationStyle string   `json:"interpretation_style"`
	InterpretationDepth string   `json:"interpretation_depth"`
	SelfAssessment      []string `json:"self_assessment"`
	PreferredCharts     []string `json:"preferred_charts"`
}

// Settings is a user's reader configuration. Every user always carries the
// full key set; updates merge into it rather than replacing it.
type Settings struct {
	Language      string        `json:"language"`
	FontSize      int           `json:"font_size"`
	FontFamily    string        `json:"font_family"`
	LineHeight    float64       `json:"line_height"`
	LetterSpacing float64       `json:"letter_spacing"`
	Background    string        `json:"background"`
	ReadingHabits ReadingHabits `json:"reading_habits"`
}

// SettingsPatch is a partial settings update. Nil fields keep their prior
// values; a non-nil ReadingHabits replaces the nested block as a whole.
// Unrecognized JSON keys have no field to land in and are silently dropped.
type SettingsPatch struct {
	Language      *string        `json:"language"`
	FontSize      *int           `json:"font_size"`
	FontFamily    *string        `json:"font_family"`
	LineHeight    *float64       `json:"line_height"`
	LetterSpacing *float64       `json:"letter_spacing"`
	Background    *string        `json:"background"`
	ReadingHabits *ReadingHabits `json:"reading_habits"`
}

// DefaultSettings returns the settings assigned to a new account.
func DefaultSettings() Settings {
	return Settings{
		Language:      "zh",
		FontSize:      18,
		FontFamily:    "Microsoft YaHei",
		LineHeight:    1.6,
		LetterSpacing: 0,
		Background:    "light_blue",
		ReadingHabits: ReadingHabits{
			PreparationLevel:    "B",
			ReadingPurpose:      "B",
			ReadingTime:         "B",
			InterpretationStyle: "A",
			InterpretationDepth: "B",
			SelfAssessment:      []string{"A", "B"},
			PreferredCharts:     []string{"A", "B"},
		},
	}
}

// Apply merges the patch into s, shallowly: provided top-level keys
// overwrite, absent keys are untouched.
func (s *Settings) Apply(p SettingsPatch) {
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.FontFamily != nil {
		s.FontFamily = *p.FontFamily
	}
	if p.LineHeight != nil {
		s.LineHeight = *p.LineHeight
	}
	if p.LetterSpacing != nil {
		s.LetterSpacing = *p.LetterSpacing
	}
	if p.Background != nil {
		s.Background = *p.Background
	}
	if p.ReadingHabits != nil {
		s.ReadingHabits = *p.ReadingHabits
	}
}
