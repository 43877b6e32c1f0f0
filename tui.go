//go:build !gui

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fryou12/chapters/internal/chapter"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFAA00"))

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	paneStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color("#444444"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)
)

// browser lists chapter titles beside a scrollable view of the selected body.
type browser struct {
	chapters []chapter.Chapter
	cursor   int
	viewport viewport.Model
	width    int
	height   int
}

func newBrowser(chapters []chapter.Chapter) browser {
	b := browser{
		chapters: chapters,
		width:    80,
		height:   24,
	}
	b.viewport = viewport.New(b.paneWidth(), b.paneHeight())
	b.refresh()
	return b
}

func (b browser) listWidth() int {
	return max(b.width/3, 12)
}

// paneWidth leaves room for the list, the border and its padding.
func (b browser) paneWidth() int {
	return max(b.width-b.listWidth()-2, 10)
}

// paneHeight reserves one line for status and one for controls.
func (b browser) paneHeight() int {
	return max(b.height-2, 1)
}

func (b *browser) refresh() {
	if len(b.chapters) == 0 {
		b.viewport.SetContent("")
		return
	}
	body := b.chapters[b.cursor].Body()
	b.viewport.SetContent(lipgloss.NewStyle().Width(b.viewport.Width).Render(body))
	b.viewport.GotoTop()
}

func (b browser) Init() tea.Cmd {
	return nil
}

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "ctrl+c":
			return b, tea.Quit

		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
				b.refresh()
			}
			return b, nil

		case "down", "j":
			if b.cursor < len(b.chapters)-1 {
				b.cursor++
				b.refresh()
			}
			return b, nil
		}

	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.viewport.Width = b.paneWidth()
		b.viewport.Height = b.paneHeight()
		b.refresh()
		return b, nil
	}

	var cmd tea.Cmd
	b.viewport, cmd = b.viewport.Update(msg)
	return b, cmd
}

func (b browser) View() string {
	if len(b.chapters) == 0 {
		return "No chapters extracted.\n"
	}

	status := statusStyle.Render(fmt.Sprintf("Chapter %d/%d | %s",
		b.cursor+1, len(b.chapters), b.chapters[b.cursor].Source))
	controls := controlsStyle.Render("↑/↓ k/j: chapter  PgUp/PgDn: scroll  Q: quit")

	list := lipgloss.NewStyle().
		Width(b.listWidth()).
		MaxWidth(b.listWidth()).
		Height(b.paneHeight()).
		MaxHeight(b.paneHeight()).
		Render(b.listView())

	body := paneStyle.Render(b.viewport.View())

	var sb strings.Builder
	sb.WriteString(status)
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, body))
	sb.WriteString("\n")
	sb.WriteString(controls)
	return sb.String()
}

// listView renders the titles in a window that keeps the cursor visible.
func (b browser) listView() string {
	rows := b.paneHeight()
	start := 0
	if b.cursor >= rows {
		start = b.cursor - rows + 1
	}
	end := min(start+rows, len(b.chapters))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		title := b.chapters[i].DisplayTitle()
		if i == b.cursor {
			lines = append(lines, selectedStyle.Render("> "+title))
		} else {
			lines = append(lines, itemStyle.Render("  "+title))
		}
	}
	return strings.Join(lines, "\n")
}
