package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimate/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// viewerChrome is the number of lines taken by the title and help bar.
const viewerChrome = 2

type viewerKeyMap struct {
	Quit   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

func defaultViewerKeyMap() viewerKeyMap {
	return viewerKeyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	}
}

// viewerModel is a read-only pager over a rendered estimate.
type viewerModel struct {
	title    string
	content  string
	vp       viewport.Model
	keys     viewerKeyMap
	ready    bool
	quitting bool
}

func newViewerModel(title, content string) viewerModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = viewerViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return viewerModel{
		title:   title,
		content: strings.TrimRight(content, "\n"),
		vp:      vp,
		keys:    defaultViewerKeyMap(),
	}
}

func viewerViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ", "f")),
		PageUp:       key.NewBinding(key.WithKeys("pgup", "b")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u", "u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d", "d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-viewerChrome, 1)
		m.vp.SetContent(m.content)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Top):
			m.vp.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.vp.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m viewerModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.content
	}

	header := formatter.StyleHeader.Render(m.title) + "  " + m.scrollIndicator()
	help := formatter.Dim("↑/↓ scroll · g/G top/bottom · q quit")
	return header + "\n" + m.vp.View() + "\n" + help
}

// scrollIndicator returns a dim scroll position string for the header.
func (m viewerModel) scrollIndicator() string {
	if m.vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if m.vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	pct := int(m.vp.ScrollPercent() * 100)
	return formatter.Dim(fmt.Sprintf("[%d%%]", pct))
}
