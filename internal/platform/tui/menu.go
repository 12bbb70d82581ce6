package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

const menuBanner = "W W W  I N V A D E R S  W W W"

// MenuItem is one selectable mode.
type MenuItem struct {
	GameID    string
	Title     string
	HighScore int
}

// MenuModel is the mode picker shown at the start of an SSH session.
type MenuModel struct {
	items  []MenuItem
	cursor int
	config core.RuntimeConfig
	keys   MenuKeyMap
	help   help.Model

	selected   *MenuItem
	scoreboard bool
	quitting   bool
}

// HighScorer looks up the best score of a mode.
type HighScorer interface {
	HighScore(gameID string) (int, error)
}

// NewMenuModel lists every registered mode with its high score.
// scores may be nil.
func NewMenuModel(scores HighScorer, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if scores != nil {
			if hs, err := scores.HighScore(g.ID); err == nil {
				item.HighScore = hs
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:  items,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd { return nil }

// Update moves the cursor and records the choice.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				item := m.items[m.cursor]
				m.selected = &item
			}
		case key.Matches(msg, m.keys.Scoreboard):
			m.scoreboard = true
		}
	}
	return m, nil
}

// View renders the banner, the mode list and the key help.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.config.ScreenW
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(menuBanner), width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-22s HI %6d", item.Title, item.HighScore)
		style := menuItemStyle
		if i == m.cursor {
			line = "> " + line[2:]
			style = menuCursorStyle
		}
		b.WriteString(centerText(style.Render(line), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Shoot the power-ups to change the rules."), width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.help.View(m.keys), width))
	return b.String()
}

// Selected returns the chosen mode, or nil.
func (m MenuModel) Selected() *MenuItem { return m.selected }

// WantsScoreboard reports whether the player opened the high scores.
func (m MenuModel) WantsScoreboard() bool { return m.scoreboard }

// IsQuitting reports whether the player left.
func (m MenuModel) IsQuitting() bool { return m.quitting }

// Config returns the runtime config with the latest window size.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

// centerText pads text to center it within width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
