package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/tui/components/habits"
	"github.com/julianstephens/stride/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.habitsModel.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil

	case constants.ConfirmationMsg:
		confirm := msg
		m.confirm = &confirm
		m.previousState = m.state
		m.state = constants.StateConfirmation
		return m, nil

	case habits.AddHabitMsg:
		return m.openAddHabitForm()

	case habits.EditHabitMsg:
		return m.openEditHabitForm(msg.ID)

	case habits.MarkHabitMsg:
		m.markDone(msg.ID)
		return m, nil

	case habits.UndoHabitMsg:
		m.undoCompletion(msg.ID)
		return m, nil

	case habits.LogHabitMsg:
		return m.openLogForm(msg.ID)

	case habits.ArchiveHabitMsg:
		id := msg.ID
		return m, func() tea.Msg {
			return constants.ConfirmationMsg{
				Message: "Archive this habit? It will be hidden from the list.",
				Action: func() tea.Cmd {
					return func() tea.Msg { return archiveConfirmedMsg{ID: id} }
				},
			}
		}

	case habits.DeleteHabitMsg:
		id := msg.ID
		return m, func() tea.Msg {
			return constants.ConfirmationMsg{
				Message: "Delete this habit? (soft delete, restorable with 'r')",
				Action: func() tea.Cmd {
					return func() tea.Msg { return deleteConfirmedMsg{ID: id} }
				},
			}
		}

	case habits.RestoreHabitMsg:
		if err := m.store.RestoreHabit(msg.ID); err != nil {
			m.statusMessage = fmt.Sprintf("failed to restore habit: %v", err)
		} else {
			m.statusMessage = "Habit restored"
		}
		m.refreshHabits()
		return m, nil

	case archiveConfirmedMsg:
		if err := m.store.ArchiveHabit(msg.ID); err != nil {
			m.statusMessage = fmt.Sprintf("failed to archive habit: %v", err)
		} else {
			m.statusMessage = "Habit archived"
		}
		m.refreshHabits()
		return m, nil

	case deleteConfirmedMsg:
		if err := m.store.DeleteHabit(msg.ID); err != nil {
			m.statusMessage = fmt.Sprintf("failed to delete habit: %v", err)
		} else {
			m.statusMessage = "Habit deleted"
		}
		m.refreshHabits()
		return m, nil
	}

	// Form states intercept all key input before the tab handling below.
	switch m.state {
	case constants.StateAddHabit, constants.StateEditHabit:
		return m.updateHabitForm(msg)
	case constants.StateLogCompletion:
		return m.updateCompletionForm(msg)
	case constants.StateEditSettings:
		return m.updateSettingsForm(msg)
	case constants.StateConfirmation:
		return m.updateConfirmation(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.state == constants.StateHabits && m.habitsModel.Filtering() {
				break
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.state = (m.state + 1) % constants.NumMainTabs
			m.statusMessage = ""
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.state = (m.state - 1 + constants.NumMainTabs) % constants.NumMainTabs
			m.statusMessage = ""
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Edit):
			if m.state == constants.StateSettings {
				return m.openSettingsForm()
			}
		}
	}

	var cmd tea.Cmd
	if m.state == constants.StateHabits {
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	}
	return m, cmd
}

type archiveConfirmedMsg struct {
	ID string
}

type deleteConfirmedMsg struct {
	ID string
}

func (m Model) openAddHabitForm() (Model, tea.Cmd) {
	defaultPeriodicity := models.Periodicity(constants.DefaultPeriodicity)
	if settings, err := m.store.GetSettings(); err == nil {
		defaultPeriodicity = settings.DefaultPeriodicity
	}

	m.habitForm = &HabitFormModel{Periodicity: defaultPeriodicity}
	m.form = newHabitForm(m.habitForm)
	m.editingHabitID = ""
	m.previousState = m.state
	m.state = constants.StateAddHabit
	return m, m.form.Init()
}

func (m Model) openEditHabitForm(id string) (Model, tea.Cmd) {
	habit, err := m.store.GetHabit(id)
	if err != nil {
		m.statusMessage = fmt.Sprintf("failed to load habit: %v", err)
		return m, nil
	}

	m.habitForm = &HabitFormModel{
		Name:        habit.Name,
		Description: habit.Description,
		Periodicity: habit.Periodicity,
	}
	m.form = newHabitForm(m.habitForm)
	m.editingHabitID = id
	m.previousState = m.state
	m.state = constants.StateEditHabit
	return m, m.form.Init()
}

func (m Model) openLogForm(id string) (Model, tea.Cmd) {
	habit, err := m.store.GetHabit(id)
	if err != nil {
		m.statusMessage = fmt.Sprintf("failed to load habit: %v", err)
		return m, nil
	}
	loc := m.now().Location()

	m.completionForm = &CompletionFormModel{}
	m.form = newCompletionForm(m.completionForm, habit.Name, loc)
	m.loggingHabitID = id
	m.previousState = m.state
	m.state = constants.StateLogCompletion
	return m, m.form.Init()
}

func (m Model) openSettingsForm() (Model, tea.Cmd) {
	settings, err := m.store.GetSettings()
	if err != nil {
		m.statusMessage = fmt.Sprintf("failed to load settings: %v", err)
		return m, nil
	}

	m.settingsForm = &SettingsFormModel{
		Timezone:           settings.Timezone,
		DefaultPeriodicity: settings.DefaultPeriodicity,
		AutoBackup:         settings.AutoBackup,
	}
	m.form = newSettingsForm(m.settingsForm)
	m.previousState = m.state
	m.state = constants.StateEditSettings
	return m, m.form.Init()
}

func (m Model) closeForm() Model {
	m.form = nil
	m.state = m.previousState
	return m
}

func (m Model) updateHabitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if err := m.applyHabitForm(); err != nil {
			m.statusMessage = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.refreshHabits()
		m.updateValidationStatus()
		return m.closeForm(), cmd
	}
	if m.form.State == huh.StateAborted {
		return m.closeForm(), cmd
	}

	return m, cmd
}

func (m *Model) applyHabitForm() error {
	name := strings.TrimSpace(m.habitForm.Name)

	if m.editingHabitID != "" {
		habit, err := m.store.GetHabit(m.editingHabitID)
		if err != nil {
			return fmt.Errorf("failed to load habit: %w", err)
		}
		if existing, err := m.store.GetHabitByName(name); err == nil && existing.ID != habit.ID {
			return fmt.Errorf("habit with name %q already exists", name)
		}
		habit.Name = name
		habit.Description = m.habitForm.Description
		habit.Periodicity = m.habitForm.Periodicity
		if err := habit.Validate(); err != nil {
			return err
		}
		if err := m.store.UpdateHabit(habit); err != nil {
			return fmt.Errorf("failed to update habit: %w", err)
		}
		m.statusMessage = fmt.Sprintf("Updated habit: %s", habit.Name)
		return nil
	}

	if _, err := m.store.GetHabitByName(name); err == nil {
		return fmt.Errorf("habit with name %q already exists", name)
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		Name:        name,
		Description: m.habitForm.Description,
		Periodicity: m.habitForm.Periodicity,
		CreatedAt:   m.now(),
	}
	if err := habit.Validate(); err != nil {
		return err
	}
	if err := m.store.AddHabit(habit); err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	m.statusMessage = fmt.Sprintf("Added %s habit: %s", habit.Periodicity, habit.Name)
	return nil
}

func (m Model) updateCompletionForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if err := m.applyCompletionForm(); err != nil {
			m.statusMessage = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.refreshHabits()
		m.updateValidationStatus()
		return m.closeForm(), cmd
	}
	if m.form.State == huh.StateAborted {
		return m.closeForm(), cmd
	}

	return m, cmd
}

func (m *Model) applyCompletionForm() error {
	habit, err := m.store.GetHabit(m.loggingHabitID)
	if err != nil {
		return fmt.Errorf("failed to load habit: %w", err)
	}

	now := m.now()
	completedAt, err := utils.ParseInstant(strings.TrimSpace(m.completionForm.At), now.Location())
	if err != nil {
		return err
	}
	if completedAt.Before(habit.CreatedAt) {
		return fmt.Errorf("completion predates habit creation (%s)", habit.CreatedAt.Format(constants.DateFormat))
	}
	if completedAt.After(now) {
		return fmt.Errorf("completion is in the future")
	}

	completion := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     habit.ID,
		CompletedAt: completedAt,
	}
	if err := m.store.AddCompletion(completion); err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	m.statusMessage = fmt.Sprintf("Completed %q at %s", habit.Name, completedAt.Format(constants.DateTimeFormat))
	return nil
}

func (m Model) updateSettingsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		settings := models.Settings{
			Timezone:           strings.TrimSpace(m.settingsForm.Timezone),
			DefaultPeriodicity: m.settingsForm.DefaultPeriodicity,
			AutoBackup:         m.settingsForm.AutoBackup,
		}
		if err := m.store.SaveSettings(settings); err != nil {
			m.statusMessage = fmt.Sprintf("failed to save settings: %v", err)
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.statusMessage = "Settings saved"
		m.refreshHabits()
		return m.closeForm(), cmd
	}
	if m.form.State == huh.StateAborted {
		return m.closeForm(), cmd
	}

	return m, cmd
}

func (m Model) updateConfirmation(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		confirm := m.confirm
		m.confirm = nil
		m.state = m.previousState
		if confirm != nil && confirm.Action != nil {
			return m, confirm.Action()
		}
		return m, nil
	case "n", "N", "esc", "q":
		m.confirm = nil
		m.state = m.previousState
		return m, nil
	}

	return m, nil
}

func (m *Model) markDone(id string) {
	habit, err := m.store.GetHabit(id)
	if err != nil {
		m.statusMessage = fmt.Sprintf("failed to load habit: %v", err)
		return
	}

	completion := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     habit.ID,
		CompletedAt: m.now(),
	}
	if err := m.store.AddCompletion(completion); err != nil {
		m.statusMessage = fmt.Sprintf("failed to record completion: %v", err)
		return
	}
	m.statusMessage = fmt.Sprintf("Completed %q", habit.Name)
	m.refreshHabits()
}

func (m *Model) undoCompletion(id string) {
	habit, err := m.store.GetHabit(id)
	if err != nil {
		m.statusMessage = fmt.Sprintf("failed to load habit: %v", err)
		return
	}

	latest, err := m.store.GetLatestCompletion(habit.ID)
	if err != nil {
		m.statusMessage = fmt.Sprintf("no completions to undo for %q", habit.Name)
		return
	}
	if err := m.store.DeleteCompletion(latest.ID); err != nil {
		m.statusMessage = fmt.Sprintf("failed to undo completion: %v", err)
		return
	}
	m.statusMessage = fmt.Sprintf("Undid completion of %q at %s", habit.Name, latest.CompletedAt.Format(constants.DateTimeFormat))
	m.refreshHabits()
}
