package view

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// Page is one screen of sr output.
type Page interface {
	render(s styles) string
}

type renderReadyMsg struct{}

type model struct {
	page   Page
	styles styles
	output string
}

func newModel(page Page) model {
	return model{page: page, styles: newStyles()}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.page.render(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render runs page through a one-shot bubbletea program and returns the frame.
func Render(page Page) (string, error) {
	if page == nil {
		return "", errors.New("render: nil page")
	}

	p := tea.NewProgram(
		newModel(page),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
