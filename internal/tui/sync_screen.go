// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"

	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
)

// syncModel renders the activity line while a user operation runs.
type syncModel struct {
	spinner  spinner.Model
	bar      progress.Model
	running  bool
	label    string
	progress *models.Progress
}

func newSyncModel() syncModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return syncModel{
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m *syncModel) begin(label string) {
	m.running = true
	m.label = label
	m.progress = nil
}

func (m *syncModel) end() {
	m.running = false
	m.label = ""
	m.progress = nil
}

func (m syncModel) View() string {
	if !m.running {
		return ""
	}
	if m.progress == nil {
		return m.spinner.View() + " " + m.label + "..."
	}
	return fmt.Sprintf("%s %s: %s (%d/%d)\n%s",
		m.spinner.View(), m.label, m.progress.Label, m.progress.Step, m.progress.TotalSteps,
		m.bar.ViewAs(m.progress.Percent/100))
}
