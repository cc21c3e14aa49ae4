// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

type confirmAction int

const (
	confirmRestore confirmAction = iota
	confirmDelete
)

type confirmModel struct {
	action    confirmAction
	versionID string
}

func (m confirmModel) View() string {
	var content string
	switch m.action {
	case confirmRestore:
		content = errorStyle.Render("DESTRUCTIVE") + "\n\n" +
			"Restore version " + m.versionID + "?\n" +
			"Every watched collection will be overwritten.\n\n"
	case confirmDelete:
		content = "Delete version " + m.versionID + " from the archive?\n\n"
	}
	content += "y yes    n no"
	return dangerBoxStyle.Render(content)
}
