package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/streak"
)

type AddHabitMsg struct{}

type EditHabitMsg struct {
	ID string
}

type MarkHabitMsg struct {
	ID string
}

type UndoHabitMsg struct {
	ID string
}

type LogHabitMsg struct {
	ID string
}

type ArchiveHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type RestoreHabitMsg struct {
	ID string
}

// Entry pairs a habit with its evaluation at the reference instant.
type Entry struct {
	Habit   models.Habit
	Current int
	State   streak.State
}

type Item struct {
	Entry     Entry
	IsDeleted bool
}

func (i Item) Title() string {
	title := i.Entry.Habit.Name
	if i.IsDeleted {
		title = "[DELETED] " + title
	} else if i.Entry.Habit.ArchivedAt != nil {
		title = "[ARCHIVED] " + title
	} else if i.Entry.State == streak.StateDone {
		title = "✓ " + title
	} else {
		title = "○ " + title
	}
	return title
}

func (i Item) Description() string {
	if i.IsDeleted {
		return "can restore with 'r'"
	}
	if i.Entry.Habit.ArchivedAt != nil {
		return "archived"
	}
	return fmt.Sprintf("%s · streak %d · %s", i.Entry.Habit.Periodicity, i.Entry.Current, i.Entry.State)
}

func (i Item) FilterValue() string { return i.Entry.Habit.Name }

type KeyMap struct {
	Add     key.Binding
	Edit    key.Binding
	Mark    key.Binding
	Undo    key.Binding
	Log     key.Binding
	Archive key.Binding
	Delete  key.Binding
	Restore key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark done"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Log: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log past completion"),
		),
		Archive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "archive"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(entries []Entry, width, height int) Model {
	l := list.New(toItems(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Undo, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Mark, keys.Undo, keys.Log, keys.Archive, keys.Delete, keys.Restore}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func toItems(entries []Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = Item{
			Entry:     entry,
			IsDeleted: entry.Habit.DeletedAt != nil,
		}
	}
	return items
}

func (m *Model) SetEntries(entries []Entry) {
	m.list.SetItems(toItems(entries))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDeleted {
					return m, func() tea.Msg { return EditHabitMsg{ID: i.Entry.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Mark):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDeleted && i.Entry.Habit.ArchivedAt == nil {
					return m, func() tea.Msg { return MarkHabitMsg{ID: i.Entry.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Undo):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDeleted && i.Entry.Habit.ArchivedAt == nil {
					return m, func() tea.Msg { return UndoHabitMsg{ID: i.Entry.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Log):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDeleted && i.Entry.Habit.ArchivedAt == nil {
					return m, func() tea.Msg { return LogHabitMsg{ID: i.Entry.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Archive):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDeleted && i.Entry.Habit.ArchivedAt == nil {
					return m, func() tea.Msg { return ArchiveHabitMsg{ID: i.Entry.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDeleted {
					return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Entry.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Restore):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.IsDeleted {
					return m, func() tea.Msg { return RestoreHabitMsg{ID: i.Entry.Habit.ID} }
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list's filter input is capturing keys.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
