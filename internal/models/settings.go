package models

// Settings represents application-wide settings
type Settings struct {
	Timezone           string      `json:"timezone"`            // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
	DefaultPeriodicity Periodicity `json:"default_periodicity"` // cadence preselected when adding habits
	AutoBackup         bool        `json:"auto_backup"`         // whether to back up the database before mutating commands
}
