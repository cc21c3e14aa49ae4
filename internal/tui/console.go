// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/service"
	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// writeClipboard is swapped in tests; headless runners have no clipboard.
var writeClipboard = clipboard.WriteAll

var errNoVersionSelected = errors.New("no version selected")

const progressBuffer = 8

type consoleModel struct {
	ctx       context.Context
	engine    service.SyncEngine
	sessionID string
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	status   models.SyncStatus
	versions []models.VersionMeta
	idx      int
	sync     syncModel
	notice   string

	liveBusy     bool
	showError    bool
	errorOverlay errorOverlayModel
	showConfirm  bool
	confirm      confirmModel
	showInfo     bool
}

func newConsoleModel(ctx context.Context, engine service.SyncEngine, sessionID string, buildInfo models.AppBuildInfo, logger *logger.Logger) consoleModel {
	return consoleModel{
		ctx:       ctx,
		engine:    engine,
		sessionID: sessionID,
		buildInfo: buildInfo,
		logger:    logger,
		status:    engine.Status(ctx),
		sync:      newSyncModel(),
	}
}

func (m consoleModel) Init() tea.Cmd {
	return tea.Batch(m.sync.spinner.Tick, m.cmdLoadVersions(), cmdStatusTick())
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.sync.spinner, cmd = m.sync.spinner.Update(msg)
		return m, cmd

	case statusTickMsg:
		m.refreshStatus()
		return m, cmdStatusTick()

	case liveToggledMsg:
		m.liveBusy = false
		m.refreshStatus()
		if msg.err != nil {
			m.showErrorf("Start live sync: %s", describeError(msg.err))
			return m, nil
		}
		return m, m.setNotice("Live sync started")

	case pushProgressMsg:
		p := msg.progress
		m.sync.progress = &p
		return m, waitProgress(msg.next)

	case pushDoneMsg:
		m.sync.end()
		m.refreshStatus()
		if msg.err != nil {
			m.showErrorf("Push: %s", describeError(msg.err))
			return m, nil
		}
		m.setVersions(m.status.Versions)
		return m, m.setNotice("Pushed version " + msg.meta.VersionID)

	case pullDoneMsg:
		m.sync.end()
		m.refreshStatus()
		if msg.err != nil {
			m.showErrorf("Pull: %s", describeError(msg.err))
			return m, nil
		}
		if !msg.result.Found {
			return m, m.setNotice("Archive is empty, nothing to pull")
		}
		return m, m.setNotice("Pulled version " + msg.result.Snapshot.VersionID)

	case versionsLoadedMsg:
		m.refreshStatus()
		if msg.err != nil {
			m.showErrorf("Load versions: %s", describeError(msg.err))
			return m, nil
		}
		m.setVersions(msg.versions)
		return m, nil

	case restoreDoneMsg:
		m.sync.end()
		m.refreshStatus()
		if msg.err != nil {
			m.showErrorf("Restore %s: %s", msg.versionID, describeError(msg.err))
			return m, nil
		}
		return m, m.setNotice("Restored version " + msg.versionID)

	case removeDoneMsg:
		m.sync.end()
		m.refreshStatus()
		if msg.err != nil {
			m.showErrorf("Delete %s: %s", msg.versionID, describeError(msg.err))
			return m, nil
		}
		m.setVersions(m.status.Versions)
		return m, m.setNotice("Deleted version " + msg.versionID)

	case drainDoneMsg:
		m.sync.end()
		m.refreshStatus()
		if msg.err != nil {
			m.showErrorf("Flush queue: %s", describeError(msg.err))
			return m, nil
		}
		notice := fmt.Sprintf("Queue flushed: %d delivered, %d failed, %d remaining",
			msg.result.Delivered, msg.result.Failed, msg.result.Remaining)
		if msg.result.Dropped > 0 {
			notice += fmt.Sprintf(", %d dropped", msg.result.Dropped)
		}
		return m, m.setNotice(notice)

	case copiedMsg:
		return m, m.setNotice("Copied " + msg.versionID)

	case clearStatusMsg:
		m.notice = ""
		return m, nil
	}

	return m, nil
}

func (m consoleModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showError {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.showError = false
			m.errorOverlay.message = ""
		}
		return m, nil
	}
	if m.showConfirm {
		return m.updateConfirm(msg)
	}
	if m.showInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.enter) || key.Matches(msg, keys.info) {
			m.showInfo = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit

	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.versions)-1 {
			m.idx++
		}

	case key.Matches(msg, keys.live):
		return m.toggleLive()

	case key.Matches(msg, keys.push):
		if m.sync.running {
			return m, nil
		}
		m.sync.begin("Pushing snapshot")
		progress := make(chan models.Progress, progressBuffer)
		return m, tea.Batch(m.cmdPush(progress), waitProgress(progress))

	case key.Matches(msg, keys.pull):
		if m.sync.running {
			return m, nil
		}
		m.sync.begin("Pulling latest version")
		return m, m.cmdPull()

	case key.Matches(msg, keys.drain):
		if m.sync.running {
			return m, nil
		}
		m.sync.begin("Flushing offline queue")
		return m, m.cmdDrain()

	case key.Matches(msg, keys.restore), key.Matches(msg, keys.delete):
		v, ok := m.current()
		if !ok {
			m.showErrorf("%s", errNoVersionSelected.Error())
			return m, nil
		}
		m.confirm = confirmModel{action: confirmDelete, versionID: v.VersionID}
		if key.Matches(msg, keys.restore) {
			m.confirm.action = confirmRestore
		}
		m.showConfirm = true

	case key.Matches(msg, keys.copy):
		v, ok := m.current()
		if !ok {
			m.showErrorf("%s", errNoVersionSelected.Error())
			return m, nil
		}
		if err := writeClipboard(v.VersionID); err != nil {
			m.showErrorf("Copy: %v", err)
			return m, nil
		}
		return m, func() tea.Msg { return copiedMsg{versionID: v.VersionID} }

	case key.Matches(msg, keys.reload):
		return m, m.cmdLoadVersions()

	case key.Matches(msg, keys.info):
		m.showInfo = true
	}

	return m, nil
}

func (m consoleModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.showConfirm = false
		if m.sync.running {
			m.showErrorf("%s", describeError(service.ErrSyncInProgress))
			return m, nil
		}
		versionID := m.confirm.versionID
		if m.confirm.action == confirmRestore {
			m.sync.begin("Restoring " + versionID)
			return m, m.cmdRestore(versionID)
		}
		m.sync.begin("Deleting " + versionID)
		return m, m.cmdRemove(versionID)
	case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
		m.showConfirm = false
		m.confirm = confirmModel{}
	}
	return m, nil
}

func (m consoleModel) toggleLive() (tea.Model, tea.Cmd) {
	if m.liveBusy {
		return m, nil
	}
	if m.status.Live != models.LiveSyncStopped {
		m.engine.StopLiveSync()
		m.refreshStatus()
		return m, m.setNotice("Live sync stopped")
	}
	m.liveBusy = true
	return m, m.cmdStartLive()
}

func (m *consoleModel) refreshStatus() {
	m.status = m.engine.Status(m.ctx)
}

func (m *consoleModel) setVersions(versions []models.VersionMeta) {
	m.versions = versions
	if m.idx >= len(m.versions) {
		m.idx = len(m.versions) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m consoleModel) current() (models.VersionMeta, bool) {
	if len(m.versions) == 0 || m.idx < 0 || m.idx >= len(m.versions) {
		return models.VersionMeta{}, false
	}
	return m.versions[m.idx], true
}

func (m *consoleModel) showErrorf(format string, args ...any) {
	m.showError = true
	m.errorOverlay.message = fmt.Sprintf(format, args...)
	m.logger.Warn().Str("func", "consoleModel.showErrorf").Msg(m.errorOverlay.message)
}

func (m *consoleModel) setNotice(notice string) tea.Cmd {
	m.notice = notice
	return cmdClearStatus()
}

func (m consoleModel) cmdStartLive() tea.Cmd {
	return func() tea.Msg {
		err := m.engine.StartLiveSync(m.ctx)
		return liveToggledMsg{started: err == nil, err: err}
	}
}

func (m consoleModel) cmdPush(progress chan<- models.Progress) tea.Cmd {
	return func() tea.Msg {
		defer close(progress)
		meta, err := m.engine.SyncPush(m.ctx, func(p models.Progress) {
			select {
			case progress <- p:
			default:
			}
		})
		return pushDoneMsg{meta: meta, err: err}
	}
}

func waitProgress(progress <-chan models.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-progress
		if !ok {
			return nil
		}
		return pushProgressMsg{progress: p, next: progress}
	}
}

func (m consoleModel) cmdPull() tea.Cmd {
	return func() tea.Msg {
		result, err := m.engine.SyncPull(m.ctx)
		return pullDoneMsg{result: result, err: err}
	}
}

func (m consoleModel) cmdLoadVersions() tea.Cmd {
	return func() tea.Msg {
		versions, err := m.engine.LoadVersions(m.ctx)
		return versionsLoadedMsg{versions: versions, err: err}
	}
}

func (m consoleModel) cmdRestore(versionID string) tea.Cmd {
	return func() tea.Msg {
		return restoreDoneMsg{versionID: versionID, err: m.engine.RestoreVersion(m.ctx, versionID)}
	}
}

func (m consoleModel) cmdRemove(versionID string) tea.Cmd {
	return func() tea.Msg {
		return removeDoneMsg{versionID: versionID, err: m.engine.RemoveVersion(m.ctx, versionID)}
	}
}

func (m consoleModel) cmdDrain() tea.Cmd {
	return func() tea.Msg {
		result, err := m.engine.DrainOfflineQueue(m.ctx)
		return drainDoneMsg{result: result, err: err}
	}
}

// describeError turns engine errors into operator-facing text.
func describeError(err error) string {
	switch {
	case errors.Is(err, service.ErrSyncInProgress):
		return "another sync operation is running, wait for it to finish"
	case errors.Is(err, service.ErrRemoteUnavailable):
		return "remote service is unavailable, try again later"
	case errors.Is(err, service.ErrSnapshotNotFound):
		return "version not found in the archive"
	case errors.Is(err, service.ErrChecksumMismatch):
		return "snapshot failed the integrity check"
	case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return "access token is expired or invalid"
	case errors.Is(err, service.ErrSnapshotTooLarge):
		return "snapshot exceeds the archive size limit"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	}
	return err.Error()
}
