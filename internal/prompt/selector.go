// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user quits a prompt.
var ErrAborted = errors.New("prompt aborted")

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#623CE4"))
	markStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#D7263D"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

// Item is one selectable entry.
type Item struct {
	Key      string
	Label    string
	Selected bool
}

// Requires couples two items: selecting Item selects Needs and deselecting
// Needs deselects Item.
type Requires struct {
	Item  string
	Needs string
}

// IO redirects the terminal of a prompt. Nil fields use the process
// terminal.
type IO struct {
	In  io.Reader
	Out io.Writer
}

func (o IO) options() []tea.ProgramOption {
	var opts []tea.ProgramOption
	if o.In != nil {
		opts = append(opts, tea.WithInput(o.In))
	}
	if o.Out != nil {
		opts = append(opts, tea.WithOutput(o.Out))
	}
	return opts
}

// Select shows a multi-select list and returns the keys of the selected
// items in list order. At least one item must be selected to confirm.
func Select(title string, items []Item, rules []Requires, term IO) ([]string, error) {
	p := tea.NewProgram(newSelectModel(title, items, rules), term.options()...)
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running selector: %w", err)
	}

	sm := m.(selectModel)
	if sm.aborted {
		return nil, ErrAborted
	}
	return sm.keys(), nil
}

type selectModel struct {
	title   string
	items   []Item
	rules   []Requires
	cursor  int
	warn    string
	aborted bool
	done    bool
}

func newSelectModel(title string, items []Item, rules []Requires) selectModel {
	m := selectModel{title: title, items: append([]Item(nil), items...), rules: rules}
	// Initial selections obey the rules too.
	for i := range m.items {
		if m.items[i].Selected {
			m.set(m.items[i].Key, true)
		}
	}
	return m
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.warn = ""
	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ", "space", "x":
		if len(m.items) > 0 {
			item := m.items[m.cursor]
			m.set(item.Key, !item.Selected)
		}
	case "a":
		all := len(m.keys()) == len(m.items)
		for _, item := range m.items {
			m.set(item.Key, !all)
		}
	case "enter":
		if len(m.keys()) == 0 {
			m.warn = "select at least one item"
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// set changes the selection of key and propagates it through the rules.
func (m *selectModel) set(key string, selected bool) {
	idx := m.index(key)
	if idx < 0 {
		return
	}
	m.items[idx].Selected = selected

	for _, r := range m.rules {
		switch {
		case selected && r.Item == key:
			if n := m.index(r.Needs); n >= 0 && !m.items[n].Selected {
				m.set(r.Needs, true)
			}
		case !selected && r.Needs == key:
			if n := m.index(r.Item); n >= 0 && m.items[n].Selected {
				m.set(r.Item, false)
			}
		}
	}
}

func (m selectModel) index(key string) int {
	for i, item := range m.items {
		if item.Key == key {
			return i
		}
	}
	return -1
}

func (m selectModel) keys() []string {
	var keys []string
	for _, item := range m.items {
		if item.Selected {
			keys = append(keys, item.Key)
		}
	}
	return keys
}

func (m selectModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n\n")
	for i, item := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = cursorStyle.Render(">")
		}
		mark := " "
		if item.Selected {
			mark = markStyle.Render("x")
		}
		label := item.Label
		if label == "" {
			label = item.Key
		}
		fmt.Fprintf(&b, "%s [%s] %s\n", cursor, mark, label)
	}
	if m.warn != "" {
		b.WriteString("\n" + errorStyle.Render(m.warn) + "\n")
	}
	b.WriteString(hintStyle.Render("\nSPACE: toggle, A: all, ENTER: go, Q/ESCAPE: quit") + "\n")
	return b.String()
}
