// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-desk-sync/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo, sessionID string) string {
	var b strings.Builder

	b.WriteString("Application: desk-sync client\n")
	b.WriteString("Version: ")
	b.WriteString(valueOrNA(info.Version))
	b.WriteString("\n")
	b.WriteString("Date: ")
	b.WriteString(valueOrNA(info.Date))
	b.WriteString("\n")
	b.WriteString("Commit: ")
	b.WriteString(valueOrNA(info.Commit))
	b.WriteString("\n")
	b.WriteString("Session: ")
	b.WriteString(valueOrNA(sessionID))

	return overlayBoxStyle.Render(renderPage("ABOUT", b.String(), "esc back"))
}
