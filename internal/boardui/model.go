// Package boardui provides the Bubble Tea leaderboard interface.
package boardui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Shasha12oly/growth-tracker/internal/model"
	"github.com/Shasha12oly/growth-tracker/internal/report"
	"github.com/Shasha12oly/growth-tracker/internal/summary"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea leaderboard UI.
type Model struct {
	result summary.Result
	byUser map[string][]model.Submission

	board  table.Model
	detail viewport.Model

	showDetail   bool
	detailUser   string
	width, height int
}

// NewModel constructs a leaderboard UI model.
func NewModel(result summary.Result, submissions []model.Submission) *Model {
	byUser := map[string][]model.Submission{}
	for _, sub := range submissions {
		byUser[sub.Username] = append(byUser[sub.Username], sub)
	}
	m := &Model{
		result: result,
		byUser: byUser,
		detail: viewport.New(0, 0),
	}
	m.board = buildBoardTable(result.Summaries, 0, 1)
	m.board.Focus()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.showDetail {
			switch msg.String() {
			case "esc", "backspace":
				m.showDetail = false
				return m, tea.ClearScreen
			default:
				var cmd tea.Cmd
				m.detail, cmd = m.detail.Update(msg)
				return m, cmd
			}
		}
		switch msg.String() {
		case "enter":
			m.openDetail()
			return m, tea.ClearScreen
		default:
			var cmd tea.Cmd
			m.board, cmd = m.board.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	title := "Leaderboard"
	help := "Nav: up/down  Open user: enter  Quit: q"
	body := tableMutedStyle.Render(m.board.View())
	if m.showDetail {
		title = m.detailUser
		help = "Scroll: up/down/pgup/pgdn  Back: esc  Quit: q"
		body = m.detail.View()
	}
	header := titleStyle.Render(title)
	footer := headerStyle.Render(help)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) updateLayout() {
	headerHeight := lipgloss.Height(titleStyle.Render("X"))
	bodyHeight := m.height - headerHeight - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.board = buildBoardTable(m.result.Summaries, m.width, bodyHeight)
	m.board.Focus()
	m.detail.Width = m.width
	m.detail.Height = bodyHeight
	if m.showDetail {
		m.renderDetail()
	}
}

func (m *Model) openDetail() {
	row := m.board.SelectedRow()
	if len(row) < 2 {
		return
	}
	m.detailUser = row[1]
	m.showDetail = true
	m.renderDetail()
	m.detail.GotoTop()
}

func (m *Model) renderDetail() {
	var selected *model.UserSummary
	for i := range m.result.Summaries {
		if m.result.Summaries[i].Username == m.detailUser {
			selected = &m.result.Summaries[i]
			break
		}
	}
	if selected == nil {
		m.detail.SetContent("User not found.")
		return
	}
	var buf bytes.Buffer
	if err := report.RenderUserReport(&buf, *selected, m.byUser[m.detailUser], m.width); err != nil {
		m.detail.SetContent(fmt.Sprintf("Failed to render report: %v", err))
		return
	}
	m.detail.SetContent(strings.TrimRight(buf.String(), "\n"))
}

func buildBoardTable(summaries []model.UserSummary, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 4},
		{Title: "User", Width: 16},
		{Title: "Total", Width: 7},
		{Title: "Avg", Width: 6},
		{Title: "Logged", Width: 6},
		{Title: "Academic", Width: 8},
		{Title: "Physical", Width: 8},
		{Title: "Mental", Width: 6},
	}
	rows := make([]table.Row, 0, len(summaries))
	for i, s := range summaries {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			s.Username,
			fmt.Sprintf("%.2f", s.TotalScore),
			fmt.Sprintf("%.2f", s.AverageScore),
			fmt.Sprintf("%d", s.DaysLogged),
			fmt.Sprintf("%d", s.AcademicStreak),
			fmt.Sprintf("%d", s.PhysicalStreak),
			fmt.Sprintf("%d", s.MentalStreak),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#C89A3A")).
		Bold(true)
	t.SetStyles(styles)
	return t
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
