// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/charmbracelet/lipgloss"
)

const versionIDWidth = 36

func (m consoleModel) View() string {
	if m.showError {
		return appStyle.Render(m.errorOverlay.View())
	}
	if m.showConfirm {
		return appStyle.Render(m.confirm.View())
	}
	if m.showInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo, m.sessionID))
	}

	var b strings.Builder
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("Versions"))
	b.WriteString("\n")
	b.WriteString(m.renderVersions())

	if line := m.sync.View(); line != "" {
		b.WriteString("\n\n")
		b.WriteString(line)
	}
	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(okStyle.Render(m.notice))
	}

	return appStyle.Render(renderPage("DESK SYNC", b.String(), renderHelp(keys.helpLine())))
}

func (m consoleModel) renderStatus() string {
	s := m.status

	online := okStyle.Render("online")
	if !s.Online {
		online = warnStyle.Render("offline")
	}

	live := string(s.Live)
	switch s.Live {
	case models.LiveSyncActive:
		live = okStyle.Render(live)
	case models.LiveSyncStarting:
		live = warnStyle.Render(live)
	}

	rows := []string{
		fmt.Sprintf("Live sync:      %s", live),
		fmt.Sprintf("Connection:     %s", online),
		fmt.Sprintf("Pending writes: %d", s.PendingWrites),
		fmt.Sprintf("Last sync:      %s", formatTime(s.LastSync)),
	}
	if s.SyncError != "" {
		rows = append(rows, "Last error:     "+errorStyle.Render(s.SyncError))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m consoleModel) renderVersions() string {
	if len(m.versions) == 0 {
		return helpStyle.Render("No archived versions")
	}

	var b strings.Builder
	for i, v := range m.versions {
		line := fmt.Sprintf("%-*s  %s  %8s",
			versionIDWidth, fitText(v.VersionID, versionIDWidth),
			v.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			formatSize(v.Size))
		if i == m.idx {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(m.versions)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
