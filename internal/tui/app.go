package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
)

type appState int

const (
	stateForm appState = iota
	statePlay
)

// styles

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	dimStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle  = lipgloss.NewStyle().Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle  = lipgloss.NewStyle().Faint(true).MarginTop(1)
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 3).
			Width(44)
)

const (
	discGlyph    = "●"
	winningGlyph = "◉"
	emptyGlyph   = "·"
	fullGlyph    = "×"
)

// named colors the form accepts besides hex and ANSI codes
var namedColors = map[string]string{
	"red":     "#e63946",
	"yellow":  "#f4d35e",
	"blue":    "#1d4ed8",
	"green":   "#2a9d8f",
	"orange":  "#f77f00",
	"purple":  "#7b2cbf",
	"pink":    "#ff70a6",
	"cyan":    "#00b4d8",
	"magenta": "#d000d0",
	"black":   "#222222",
	"white":   "#f8f9fa",
	"gray":    "#8d99ae",
	"grey":    "#8d99ae",
}

func swatch(color string) lipgloss.Color {
	if hex, ok := namedColors[strings.ToLower(strings.TrimSpace(color))]; ok {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(color)
}

// model

type Model struct {
	game   *game.Service
	view   *boardView
	logger *slog.Logger

	state  appState
	inputs [2]textinput.Model
	focus  int
	cursor int
	width  int
	height int
}

// New builds the terminal UI together with the game service it drives.
func New(logger *slog.Logger, options game.Options) Model {
	view := &boardView{}

	var inputs [2]textinput.Model
	defaults := [2]string{options.Player1Color, options.Player2Color}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = defaults[i]
		ti.CharLimit = 32
		ti.Prompt = fmt.Sprintf("Player %d > ", i+1)
		inputs[i] = ti
	}
	inputs[0].Focus()

	return Model{
		game:   game.NewService(view, logger, options),
		view:   view,
		logger: logger,
		inputs: inputs,
		cursor: domain.Columns / 2,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.state {
	case statePlay:
		return m.updatePlay(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return m, tea.Quit
		case "tab", "down", "shift+tab", "up":
			return m.setFocus(1 - m.focus), textinput.Blink
		case "enter":
			if m.focus == 0 {
				return m.setFocus(1), textinput.Blink
			}
			m.game.Start(m.inputs[0].Value(), m.inputs[1].Value())
			m.state = statePlay
			m.inputs[m.focus].Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) setFocus(i int) Model {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

func (m Model) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "q", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < domain.Columns-1 {
			m.cursor++
		}
	case "enter", " ":
		m.drop(m.cursor)
	case "n":
		m.state = stateForm
		m.focus = 0
		m.inputs[0].Focus()
		return m, textinput.Blink
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] < '1'+domain.Columns {
			m.cursor = int(s[0] - '1')
			m.drop(m.cursor)
		}
	}
	return m, nil
}

func (m Model) drop(column int) {
	if _, err := m.game.DropPiece(column); err != nil {
		m.logger.Debug("move ignored", "column", column, "reason", err)
	}
}

// view

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Connect Four") + "\n")

	if m.state == stateForm {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderBoard() + "\n")
		b.WriteString(m.renderStatus())
	}
	b.WriteString(m.renderHelp())

	if m.width == 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(boldStyle.Render("Pick colors") + "\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View() + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("Names, #rrggbb or ANSI codes. Blank keeps the default."))
	return modalStyle.Render(b.String())
}

func (m Model) renderBoard() string {
	snap := m.game.Snapshot()
	winning := make(map[domain.Position]bool, len(snap.WinningLine))
	for _, p := range snap.WinningLine {
		winning[p] = true
	}

	board := m.game.Session().Board
	open := make(map[int]bool, domain.Columns)
	for _, c := range board.ValidColumns() {
		open[c] = true
	}

	var b strings.Builder
	for c := 0; c < domain.Columns; c++ {
		label, marker := fmt.Sprint(c+1), "▼"
		if !open[c] {
			label, marker = fullGlyph, fullGlyph
		}
		if c == m.cursor && snap.Status == domain.StatusInProgress {
			b.WriteString(lipgloss.NewStyle().Foreground(swatch(snap.CurrentColor)).Render(marker) + " ")
		} else {
			b.WriteString(dimStyle.Render(label) + " ")
		}
	}
	b.WriteString("\n")

	for r := 0; r < domain.Rows; r++ {
		for c := 0; c < domain.Columns; c++ {
			color := m.view.cells[r][c]
			switch {
			case color == "":
				b.WriteString(dimStyle.Render(emptyGlyph))
			case winning[domain.Position{Row: r, Column: c}]:
				b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(swatch(color)).Render(winningGlyph))
			default:
				b.WriteString(lipgloss.NewStyle().Foreground(swatch(color)).Render(discGlyph))
			}
			if c < domain.Columns-1 {
				b.WriteString(" ")
			}
		}
		if r < domain.Rows-1 {
			b.WriteString("\n")
		}
	}

	return boardStyle.Render(b.String())
}

func (m Model) renderStatus() string {
	if m.view.banner != "" {
		return errStyle.Bold(true).Render(m.view.banner)
	}
	session := m.game.Session()
	player, ok := session.Player(session.Current)
	if !ok {
		return ""
	}
	disc := lipgloss.NewStyle().Foreground(swatch(player.Color)).Render(discGlyph)
	return fmt.Sprintf("%s %s to move", disc, player.Name())
}

func (m Model) renderHelp() string {
	var text string
	switch m.state {
	case stateForm:
		text = "Tab switch   Enter next/start   Esc quit"
	default:
		text = "←/→ choose   Enter drop   1-7 drop   n new game   q quit"
	}
	return "\n" + helpStyle.Render(text)
}
