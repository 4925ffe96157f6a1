package models

import (
	"fmt"

	"github.com/julianstephens/stride/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingDefaultPeriodicity:
			p, err := ParsePeriodicity(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing default_periodicity: %w", err)
			}
			settings.DefaultPeriodicity = p
		case constants.SettingAutoBackup:
			settings.AutoBackup = value == "true"
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:           settings.Timezone,
		constants.SettingDefaultPeriodicity: string(settings.DefaultPeriodicity),
		constants.SettingAutoBackup:         fmt.Sprintf("%v", settings.AutoBackup),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.DefaultPeriodicity == "" {
		settings.DefaultPeriodicity = Periodicity(constants.DefaultPeriodicity)
	}
}
