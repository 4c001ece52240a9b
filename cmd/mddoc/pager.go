// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// runPager shows rendered output in a full-screen scrollable viewport.
// Arrow keys and page up/down scroll; q, escape, or ctrl+c exit.
func runPager(content string) error {
	program := tea.NewProgram(pagerModel{content: content},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := program.Run()
	return err
}

type pagerModel struct {
	content  string
	viewport viewport.Model
	ready    bool
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		// The viewport can only be sized once the first window size
		// message arrives.
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	if !m.ready {
		return ""
	}
	return m.viewport.View()
}
