// Package ui implements the interactive prediction form.
//
// The form presents five
// input fields, a prediction line, and a scatter chart re-rendered to disk
// after each prediction. Prediction calls run synchronously in the update
// loop; the next request cannot start until the current one returns.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vgsales-predictor/internal/chart"
	"vgsales-predictor/pipeline"
	"vgsales-predictor/pkg/log"
)

// Predictor is the slice of the fitted pipeline the form needs.
type Predictor interface {
	Predict(req pipeline.Request) (float64, error)
	R2() float64
}

// Field indices, in focus order.
const (
	fieldTitle = iota
	fieldYear
	fieldPlatform
	fieldGenre
	fieldPublisher
	numFields
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	resultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var fieldLabels = [numFields]string{
	"Title",
	"Year",
	"Platform",
	"Genre",
	"Publisher",
}

var fieldHints = [numFields]string{
	"e.g. Wii Sports",
	"1980-2022",
	"e.g. Wii, PS4, X360",
	"e.g. Sports, Action, Puzzle",
	"e.g. Nintendo",
}

// Model is the Bubble Tea model for the prediction form.
type Model struct {
	inputs [numFields]textinput.Model
	focus  int

	predictor Predictor
	chart     *chart.Chart

	// result holds the last prediction or validation-failure line.
	result  string
	isError bool

	quitting bool
}

// NewModel creates the form over a fitted predictor. chart may be nil to
// disable chart rendering.
func NewModel(p Predictor, c *chart.Chart) Model {
	m := Model{predictor: p, chart: c}
	for i := 0; i < numFields; i++ {
		in := textinput.New()
		in.Placeholder = fieldHints[i]
		in.CharLimit = 64
		in.Width = 32
		m.inputs[i] = in
	}
	m.inputs[fieldTitle].Focus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyTab, tea.KeyDown:
			return m.moveFocus(1), nil

		case tea.KeyShiftTab, tea.KeyUp:
			return m.moveFocus(-1), nil

		case tea.KeyEnter:
			// Enter advances until the last field, then submits.
			if m.focus < numFields-1 {
				return m.moveFocus(1), nil
			}
			return m.submit(), nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// moveFocus shifts input focus by delta, wrapping around.
func (m Model) moveFocus(delta int) Model {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + numFields) % numFields
	m.inputs[m.focus].Focus()
	return m
}

// submit validates the form and runs one prediction to completion.
func (m Model) submit() Model {
	req, err := pipeline.ParseRequest(
		m.inputs[fieldTitle].Value(),
		m.inputs[fieldYear].Value(),
		m.inputs[fieldPlatform].Value(),
		m.inputs[fieldGenre].Value(),
		m.inputs[fieldPublisher].Value(),
	)
	if err != nil {
		m.result = err.Error()
		m.isError = true
		return m
	}

	prediction, err := m.predictor.Predict(req)
	if err != nil {
		m.result = err.Error()
		m.isError = true
		return m
	}

	m.result = fmt.Sprintf("Predicted global sales: %.4f million units", prediction)
	m.isError = false

	if m.chart != nil {
		m.chart.AddPrediction(req.Year, prediction)
		if err := m.chart.Render(); err != nil {
			log.GetLoggerWithName("ui").Warn("chart render failed", "error", err.Error())
		}
	}
	return m
}

// Result returns the last prediction or error line (for tests).
func (m Model) Result() (string, bool) {
	return m.result, m.isError
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := titleStyle.Render("Video Game Sales Predictor") + "\n"
	s += labelStyle.Render(fmt.Sprintf("training R²: %.4f", m.predictor.R2())) + "\n\n"

	for i := 0; i < numFields; i++ {
		label := fieldLabels[i]
		if i == m.focus {
			label = focusedStyle.Render("> " + label)
		} else {
			label = labelStyle.Render("  " + label)
		}
		s += fmt.Sprintf("%s  %s\n", label, m.inputs[i].View())
	}

	s += "\n"
	if m.result != "" {
		if m.isError {
			s += errorStyle.Render(m.result) + "\n"
		} else {
			s += resultStyle.Render(m.result) + "\n"
		}
	}
	if m.chart != nil {
		s += labelStyle.Render("chart: "+m.chart.Path()) + "\n"
	}
	s += helpStyle.Render("tab/enter: next field • enter on publisher: predict • esc: quit")
	return s
}

// Run starts the interactive form and blocks until the user quits.
func Run(p Predictor, c *chart.Chart) error {
	program := tea.NewProgram(NewModel(p, c))
	_, err := program.Run()
	return err
}
