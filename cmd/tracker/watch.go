package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spunky-sabin/clash-clone/internal/progress"
)

const barWidth = 30

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	labelStyle    = lipgloss.NewStyle().Width(12)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	timerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	completeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live view of running upgrades, refreshed every second",
		Run: func(cmd *cobra.Command, args []string) {
			s := mustSession()
			m := newWatchModel(s, time.Now)
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				color.Red("Error: %v", err)
			}
		},
	}
}

type tickMsg time.Time

// watchModel re-runs the analysis on every tick. The snapshot never changes,
// only the instant it is reconciled against.
type watchModel struct {
	session *session
	clock   func() time.Time
	report  *progress.Report
	err     error
}

func newWatchModel(s *session, clock func() time.Time) watchModel {
	m := watchModel{session: s, clock: clock}
	m.report, m.err = s.analyze(clock())
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return tick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		m.report, m.err = m.session.analyze(time.Time(msg))
		return m, tick()
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	r := m.report
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s, %s %d", r.Name, r.Tag, hallName(r.Village), r.Tier)))
	b.WriteString("\n\n")

	for _, c := range r.Categories {
		if c.State == progress.StateEmpty {
			continue
		}
		b.WriteString(labelStyle.Render(string(c.Category)))
		b.WriteString(progressBar(c.Percent, barWidth))
		if c.State == progress.StateComplete {
			b.WriteString(completeStyle.Render("  ✓ complete"))
		} else {
			b.WriteString(fmt.Sprintf("  %5.1f%%", c.DisplayPercent()))
		}
		if c.TracksTime && c.RemainingTime > 0 {
			b.WriteString(timerStyle.Render("  " + formatTime(c.RemainingPerBuilder())))
		}
		b.WriteString("\n")
	}

	up := r.Upgrading()
	b.WriteString("\n")
	if len(up) == 0 {
		b.WriteString(pendingStyle.Render("No upgrades running"))
		b.WriteString("\n")
	}
	for _, row := range up {
		u := row.Upgrade
		b.WriteString(fmt.Sprintf("⏳ %-24s %2d → %-2d ", row.Name, row.Level, u.To))
		b.WriteString(progressBar(u.Progress, barWidth/2))
		b.WriteString(timerStyle.Render(fmt.Sprintf("  %s", formatTime(u.Remaining))))
		b.WriteString(pendingStyle.Render(fmt.Sprintf("  %d gems", u.Gems)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q to quit"))
	b.WriteString("\n")
	return b.String()
}

// progressBar draws percent as a filled bar of the given width
func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return doneStyle.Render(strings.Repeat("█", filled)) +
		pendingStyle.Render(strings.Repeat("░", width-filled))
}
