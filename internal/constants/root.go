package constants

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ConflictType represents the type of validation conflict
type ConflictType string

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "stride"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/stride/stride.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat is the combined form accepted by flags such as --at
	DateTimeFormat = "2006-01-02 15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "stride-"
	BackupFileSuffix = ".db"

	// Conflict Types
	ConflictUnknownPeriodicity       ConflictType = "unknown_periodicity"
	ConflictCompletionBeforeCreation ConflictType = "completion_before_creation"
	ConflictFutureCompletion         ConflictType = "future_completion"
	ConflictOrphanedCompletion       ConflictType = "orphaned_completion"
	ConflictDuplicateHabitName       ConflictType = "duplicate_habit_name"
	ConflictInvalidDateTime          ConflictType = "invalid_date_time"

	// NumMainTabs counts the top-level TUI tabs (habits, stats, settings)
	NumMainTabs = 3
)

// Session States
const (
	StateHabits SessionState = iota
	StateStats
	StateSettings
	StateAddHabit
	StateEditHabit
	StateLogCompletion
	StateEditSettings
	StateConfirmation
)
