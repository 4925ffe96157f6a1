package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case constants.StateStats:
		content = docStyle.Render(m.viewStats())
	case constants.StateSettings:
		content = docStyle.Render(m.viewSettings())
	case constants.StateAddHabit, constants.StateEditHabit, constants.StateLogCompletion, constants.StateEditSettings:
		return m.form.View()
	case constants.StateConfirmation:
		return m.viewConfirmation()
	}

	sections := []string{m.viewTabs(), content}
	if m.validationWarning != "" {
		sections = append(sections, warningStyle.Render(m.validationWarning))
	}
	if m.statusMessage != "" {
		sections = append(sections, m.statusMessage)
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Habits", "Stats", "Settings"} {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStats() string {
	if len(m.statsRows) == 0 {
		return "No habits to report on yet."
	}

	var b strings.Builder
	for _, p := range models.Periodicities() {
		var lines []string
		for _, row := range m.statsRows {
			if row.Periodicity != p {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %-24s current %3d  longest %3d", row.Name, row.Current, row.Longest))
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s\n", strings.ToUpper(string(p)))
		for _, line := range lines {
			fmt.Fprintln(&b, line)
		}
		fmt.Fprintln(&b)
	}
	fmt.Fprintf(&b, "Longest streak overall: %d", m.statsLongest)
	return b.String()
}

func (m Model) viewSettings() string {
	settings, err := m.store.GetSettings()
	if err != nil {
		return dangerStyle.Render(fmt.Sprintf("failed to load settings: %v", err))
	}

	autoBackup := "disabled"
	if settings.AutoBackup {
		autoBackup = "enabled"
	}

	return strings.Join([]string{
		fmt.Sprintf("Timezone:            %s", settings.Timezone),
		fmt.Sprintf("Default periodicity: %s", settings.DefaultPeriodicity),
		fmt.Sprintf("Automatic backups:   %s", autoBackup),
		"",
		inactiveTabStyle.Render("press 'e' to edit"),
	}, "\n")
}

func (m Model) viewConfirmation() string {
	message := ""
	if m.confirm != nil {
		message = m.confirm.Message
	}

	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(message),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
