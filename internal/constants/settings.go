package constants

const (
	// General Settings
	SettingTimezone           = "timezone"
	SettingDefaultPeriodicity = "default_periodicity"
	SettingAutoBackup         = "auto_backup"

	// Default Settings Values
	DefaultTimezone    = "Local" // Use system local timezone by default
	DefaultPeriodicity = "daily"
	DefaultAutoBackup  = true
)
