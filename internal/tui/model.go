package tui

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/storage"
	"github.com/julianstephens/stride/internal/streak"
	"github.com/julianstephens/stride/internal/tui/components/habits"
	"github.com/julianstephens/stride/internal/utils"
	"github.com/julianstephens/stride/internal/validation"
)

// statsRow is one habit's streak summary on the stats tab.
type statsRow struct {
	Name        string
	Periodicity models.Periodicity
	Current     int
	Longest     int
}

type Model struct {
	store             storage.Provider
	state             constants.SessionState
	previousState     constants.SessionState
	keys              KeyMap
	help              help.Model
	habitsModel       habits.Model
	form              *huh.Form
	habitForm         *HabitFormModel
	completionForm    *CompletionFormModel
	settingsForm      *SettingsFormModel
	editingHabitID    string
	loggingHabitID    string
	confirm           *constants.ConfirmationMsg
	statsRows         []statsRow
	statsLongest      int
	validationWarning string
	statusMessage     string
	quitting          bool
	width             int
	height            int
}

func NewModel(store storage.Provider) Model {
	m := Model{
		store:       store,
		state:       constants.StateHabits,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		habitsModel: habits.New(nil, 0, 0),
	}

	m.refreshHabits()
	m.updateValidationStatus()

	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == constants.StateSettings {
		keys = append(keys, m.keys.Edit)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Left, m.keys.Right},
		{m.keys.Edit, m.keys.Help, m.keys.Quit},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// now returns the reference instant in the configured timezone, falling back
// to the system clock when settings cannot be read.
func (m *Model) now() time.Time {
	settings, err := m.store.GetSettings()
	if err != nil {
		return time.Now()
	}
	now, err := utils.NowFromSettings(settings)
	if err != nil {
		return time.Now()
	}
	return now
}

// refreshHabits reloads habits from the store and recomputes each one's
// streak and status, along with the stats tab rows.
func (m *Model) refreshHabits() {
	asOf := m.now()

	// includeArchived=false, includeDeleted=true
	habitList, err := m.store.GetAllHabits(false, true)
	if err != nil {
		m.statusMessage = fmt.Sprintf("failed to load habits: %v", err)
		return
	}

	entries := make([]habits.Entry, 0, len(habitList))
	rows := make([]statsRow, 0, len(habitList))
	var histories []streak.History

	for _, h := range habitList {
		entry := habits.Entry{Habit: h}

		if h.DeletedAt == nil {
			completions, err := m.store.GetCompletionsForHabit(h.ID)
			if err != nil {
				m.statusMessage = fmt.Sprintf("failed to load completions: %v", err)
				return
			}
			instants := models.Instants(completions)

			result, err := streak.ComputeStreak(h.Periodicity, instants, asOf)
			if err == nil {
				entry.Current = result.Current
			}
			status, err := streak.EvaluateStatus(h.Periodicity, instants, asOf)
			if err == nil {
				entry.State = status.State
			}

			rows = append(rows, statsRow{
				Name:        h.Name,
				Periodicity: h.Periodicity,
				Current:     result.Current,
				Longest:     result.Longest,
			})
			histories = append(histories, streak.History{
				Periodicity: h.Periodicity,
				Completions: instants,
			})
		}

		entries = append(entries, entry)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	m.habitsModel.SetEntries(entries)
	m.statsRows = rows
	m.statsLongest, _ = streak.LongestStreakAcrossHabits(histories)
}

// updateValidationStatus runs data validation and updates the warning banner.
func (m *Model) updateValidationStatus() {
	habitList, err := m.store.GetAllHabits(true, true)
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}
	completions, err := m.store.GetAllCompletions(false)
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}

	result := validation.New().Validate(habitList, completions, m.now())
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}
