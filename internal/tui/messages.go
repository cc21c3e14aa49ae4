// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"time"

	"github.com/MKhiriev/go-desk-sync/models"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	statusRefreshInterval = time.Second
	statusClearDelay      = 3 * time.Second
)

type statusTickMsg struct{}

type liveToggledMsg struct {
	started bool
	err     error
}

type pushProgressMsg struct {
	progress models.Progress
	next     <-chan models.Progress
}

type pushDoneMsg struct {
	meta models.VersionMeta
	err  error
}

type pullDoneMsg struct {
	result models.PullResult
	err    error
}

type versionsLoadedMsg struct {
	versions []models.VersionMeta
	err      error
}

type restoreDoneMsg struct {
	versionID string
	err       error
}

type removeDoneMsg struct {
	versionID string
	err       error
}

type drainDoneMsg struct {
	result models.DrainResult
	err    error
}

type copiedMsg struct {
	versionID string
}

type clearStatusMsg struct{}

func cmdStatusTick() tea.Cmd {
	return tea.Tick(statusRefreshInterval, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusClearDelay, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
