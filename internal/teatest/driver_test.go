package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type counter struct {
	n     int
	width int
}

type incMsg struct{}

func (c counter) Init() tea.Cmd { return func() tea.Msg { return incMsg{} } }

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case incMsg:
		c.n++
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "+":
			return c, tea.Batch(func() tea.Msg { return incMsg{} }, func() tea.Msg { return incMsg{} })
		case "q":
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c counter) View() string { return "" }

func TestDriver_DrainsInitAndBatches(t *testing.T) {
	d := New(t, counter{}, WithSize(40, 10))
	assert.Equal(t, 1, d.Model.(counter).n)
	assert.Equal(t, 40, d.Model.(counter).width)

	d.PressKey('+')
	assert.Equal(t, 3, d.Model.(counter).n)
}

func TestDriver_QuitStopsFurtherInput(t *testing.T) {
	d := New(t, counter{})
	d.PressKey('q')
	assert.True(t, d.Quitting)

	d.PressKey('+')
	assert.Equal(t, 1, d.Model.(counter).n)
}
