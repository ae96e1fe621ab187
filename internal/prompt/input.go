// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Question is a single line text prompt. Validate, when set, must accept the
// trimmed answer before it is returned.
type Question struct {
	Title       string
	Placeholder string
	Default     string
	Validate    func(string) error
}

// Ask shows the question and returns the trimmed answer.
func Ask(q Question, term IO) (string, error) {
	p := tea.NewProgram(newInputModel(q), term.options()...)
	m, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}

	im := m.(inputModel)
	if im.aborted {
		return "", ErrAborted
	}
	return im.answer, nil
}

type inputModel struct {
	question Question
	input    textinput.Model
	answer   string
	warn     string
	aborted  bool
	done     bool
}

func newInputModel(q Question) inputModel {
	ti := textinput.New()
	ti.Placeholder = q.Placeholder
	ti.SetValue(q.Default)
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 80
	ti.Prompt = cursorStyle.Render("> ")
	ti.Cursor.SetMode(cursor.CursorBlink)

	return inputModel{question: q, input: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			answer := strings.TrimSpace(m.input.Value())
			if m.question.Validate != nil {
				if err := m.question.Validate(answer); err != nil {
					m.warn = err.Error()
					return m, nil
				}
			}
			m.answer = answer
			m.done = true
			return m, tea.Quit
		}
	}

	m.warn = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	lines := []string{titleStyle.Render(m.question.Title), m.input.View()}
	if m.warn != "" {
		lines = append(lines, errorStyle.Render(m.warn))
	}
	lines = append(lines, hintStyle.Render("ENTER: accept, ESCAPE: quit"))
	return strings.Join(lines, "\n") + "\n"
}
