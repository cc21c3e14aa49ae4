// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/adapter"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/store"
	"github.com/MKhiriev/go-desk-sync/models"
)

const defaultPushTimeout = 10 * time.Second

// maxAppliedKeys is the size at which per-record apply times at or before the
// cursor are pruned while the live stream is in sync.
const maxAppliedKeys = 1024

// LiveSyncConfig parameterises a [LiveSyncController].
type LiveSyncConfig struct {
	// SessionID tags outbound writes and identifies echoes.
	SessionID string
	// Watched lists the collections diffed and pushed.
	Watched []string
	// Scope bounds the remote subscription.
	Scope models.SubscriptionScope
	// PushTimeout bounds one remote write.
	PushTimeout time.Duration
	// Online reports current connectivity. While it returns false deltas
	// go straight to the offline queue.
	Online func() bool
	// OnDisconnect is called when an established subscription drops.
	OnDisconnect func()
}

// applyState tracks whether remote data is being merged into the state.
type applyState int32

const (
	applyIdle applyState = iota
	applyingRemote
)

type pushItem struct {
	delta models.Delta
}

// LiveSyncController pushes local edits as per-record deltas and merges
// remote change notifications into the application state.
//
// Lifecycle: stopped -> starting -> active -> stopped. Every start opens a new
// generation; callbacks of an older generation are ignored, which is how
// completions that arrive after Stop are discarded.
type LiveSyncController struct {
	state  *AppState
	remote adapter.RemoteDocumentClient
	queue  *OfflineQueue
	store  store.LocalStore
	cfg    LiveSyncConfig
	logger *logger.Logger

	mu            sync.Mutex
	lifecycle     models.LiveSyncState
	generation    uint64
	unsubscribe   adapter.UnsubscribeFunc
	cancelObserve func()
	cancelRun     context.CancelFunc
	pending       []pushItem
	wake          chan struct{}
	wg            sync.WaitGroup

	// remoteMu serialises remote application and guards the fields below.
	// cursor is the persisted change log position; every change up to it
	// has been applied. Live notifications move it only while inSync, that
	// is after a catch-up has closed the gap since the subscription opened.
	// Until then the newest live position is kept in liveHigh.
	remoteMu sync.Mutex
	apply    atomic.Int32
	cursor   *models.ChangeCursor
	inSync   bool
	liveHigh *models.ChangeCursor
	applied  map[models.QueueKey]time.Time
}

func NewLiveSyncController(state *AppState, remote adapter.RemoteDocumentClient, queue *OfflineQueue, localStore store.LocalStore, cfg LiveSyncConfig, logger *logger.Logger) *LiveSyncController {
	if cfg.PushTimeout <= 0 {
		cfg.PushTimeout = defaultPushTimeout
	}
	if cfg.Online == nil {
		cfg.Online = func() bool { return true }
	}

	return &LiveSyncController{
		state:     state,
		remote:    remote,
		queue:     queue,
		store:     localStore,
		cfg:       cfg,
		logger:    logger.WithComponent("live-sync"),
		lifecycle: models.LiveSyncStopped,
		applied:   make(map[models.QueueKey]time.Time),
	}
}

// State returns the lifecycle state.
func (c *LiveSyncController) State() models.LiveSyncState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lifecycle
}

// Start subscribes to remote changes, registers the local state observer and
// pulls changes newer than the sync cursor. It is a no-op unless the
// controller is stopped. A failed subscription leaves it stopped.
func (c *LiveSyncController) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.lifecycle != models.LiveSyncStopped {
		c.mu.Unlock()
		return nil
	}
	c.lifecycle = models.LiveSyncStarting
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	since := c.resetRemote(ctx)

	unsubscribe, err := c.subscribe(ctx, gen)
	if err != nil {
		c.mu.Lock()
		if c.generation == gen {
			c.lifecycle = models.LiveSyncStopped
		}
		c.mu.Unlock()
		return fmt.Errorf("live sync subscribe: %w", err)
	}

	runCtx, cancelRun := context.WithCancel(context.WithoutCancel(ctx))
	wake := make(chan struct{}, 1)

	c.mu.Lock()
	if c.generation != gen {
		// stopped while subscribing
		c.mu.Unlock()
		unsubscribe()
		cancelRun()
		return nil
	}
	c.unsubscribe = unsubscribe
	c.cancelRun = cancelRun
	c.wake = wake
	c.cancelObserve = c.state.Observe(func(change StateChange) { c.onStateChange(gen, change) })
	c.lifecycle = models.LiveSyncActive
	c.wg.Add(1)
	c.mu.Unlock()

	go c.pushLoop(runCtx, gen, wake)

	c.logger.Info().Str("func", "LiveSyncController.Start").
		Str("session", c.cfg.SessionID).Strs("watched", c.cfg.Watched).Msg("live sync active")

	c.catchUp(ctx, gen, since)
	return nil
}

// Stop cancels the subscription and the state observer and moves deltas
// that were not sent yet to the offline queue. Calls already in flight may
// finish, but they no longer touch the controller.
func (c *LiveSyncController) Stop() {
	c.mu.Lock()
	if c.lifecycle == models.LiveSyncStopped {
		c.mu.Unlock()
		return
	}
	c.lifecycle = models.LiveSyncStopped
	c.generation++
	unsubscribe, cancelObserve, cancelRun := c.unsubscribe, c.cancelObserve, c.cancelRun
	pending := c.pending
	c.unsubscribe, c.cancelObserve, c.cancelRun, c.pending, c.wake = nil, nil, nil, nil, nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if cancelObserve != nil {
		cancelObserve()
	}
	if cancelRun != nil {
		cancelRun()
	}

	ctx := context.Background()
	for _, item := range pending {
		if err := c.queue.Enqueue(ctx, models.QueueEntryFromDelta(item.delta)); err != nil {
			c.logger.Err(err).Str("func", "LiveSyncController.Stop").
				Str("collection", item.delta.Collection).Str("id", item.delta.ID).
				Msg("queue unsent delta")
		}
	}

	c.logger.Info().Str("func", "LiveSyncController.Stop").
		Int("moved_to_queue", len(pending)).Msg("live sync stopped")
}

// Wait blocks until every push worker started so far has exited.
func (c *LiveSyncController) Wait() {
	c.wg.Wait()
}

// Reconnect re-opens a dropped subscription and catches up. It does nothing
// unless the controller is active without a subscription.
func (c *LiveSyncController) Reconnect(ctx context.Context) error {
	c.mu.Lock()
	if c.lifecycle != models.LiveSyncActive || c.unsubscribe != nil {
		c.mu.Unlock()
		return nil
	}
	gen := c.generation
	c.mu.Unlock()

	since := c.beginResync()

	unsubscribe, err := c.subscribe(ctx, gen)
	if err != nil {
		return fmt.Errorf("live sync resubscribe: %w", err)
	}

	c.mu.Lock()
	if !c.isCurrent(gen) || c.unsubscribe != nil {
		c.mu.Unlock()
		unsubscribe()
		return nil
	}
	c.unsubscribe = unsubscribe
	c.mu.Unlock()

	c.catchUp(ctx, gen, since)
	return nil
}

// Cursor returns the change log position up to which every remote change
// has been applied.
func (c *LiveSyncController) Cursor() *models.ChangeCursor {
	c.remoteMu.Lock()
	defer c.remoteMu.Unlock()
	return copyCursor(c.cursor)
}

func (c *LiveSyncController) subscribe(ctx context.Context, gen uint64) (adapter.UnsubscribeFunc, error) {
	return c.remote.Subscribe(ctx, c.cfg.Scope,
		func(n models.ChangeNotification) {
			c.applyRemote(gen, []models.ChangeNotification{n}, false)
		},
		func(err error) {
			c.onSubscriptionLost(gen, err)
		},
	)
}

func (c *LiveSyncController) onSubscriptionLost(gen uint64, err error) {
	c.mu.Lock()
	if !c.isCurrent(gen) {
		c.mu.Unlock()
		return
	}
	c.unsubscribe = nil
	c.mu.Unlock()

	c.remoteMu.Lock()
	c.inSync = false
	c.remoteMu.Unlock()

	c.logger.Warn().Err(err).Str("func", "LiveSyncController.onSubscriptionLost").
		Msg("live subscription dropped")

	if c.cfg.OnDisconnect != nil {
		c.cfg.OnDisconnect()
	}
}

// catchUp pulls the change log page by page from since, which was read
// before the subscription opened. Once the last page is applied the live
// stream has no gap and may move the cursor. Failures are logged; the next
// start or reconnect tries again from the last applied page.
func (c *LiveSyncController) catchUp(ctx context.Context, gen uint64, since *models.ChangeCursor) {
	pages := 0
	for {
		set, err := c.remote.ChangesSince(ctx, c.cfg.Scope, since)
		if err != nil {
			c.logger.Warn().Err(err).Str("func", "LiveSyncController.catchUp").
				Int("pages", pages).Msg("catch-up pull failed")
			return
		}
		pages++

		if !c.applyRemote(gen, set.Changes, true) {
			return
		}
		if len(set.Changes) == 0 || !set.More {
			break
		}
		last := set.Changes[len(set.Changes)-1].Cursor()
		since = &last
	}

	c.finishCatchUp(gen)
	c.logger.Debug().Str("func", "LiveSyncController.catchUp").Int("pages", pages).Msg("catch-up complete")
}

// resetRemote loads the persisted cursor for a new generation and returns a
// copy of it as the catch-up start.
func (c *LiveSyncController) resetRemote(ctx context.Context) *models.ChangeCursor {
	c.remoteMu.Lock()
	defer c.remoteMu.Unlock()

	c.applied = make(map[models.QueueKey]time.Time)
	c.inSync = false
	c.liveHigh = nil
	c.cursor = nil

	var cursor models.ChangeCursor
	found, err := store.GetJSON(ctx, c.store, cursorKey, &cursor)
	if err != nil {
		c.logger.Warn().Err(err).Str("func", "LiveSyncController.resetRemote").Msg("load sync cursor")
	}
	if found && err == nil && !cursor.At.IsZero() {
		c.cursor = &cursor
	}
	return copyCursor(c.cursor)
}

// beginResync marks the live stream as having a gap and returns the cursor
// to catch up from.
func (c *LiveSyncController) beginResync() *models.ChangeCursor {
	c.remoteMu.Lock()
	defer c.remoteMu.Unlock()

	c.inSync = false
	c.liveHigh = nil
	return copyCursor(c.cursor)
}

// finishCatchUp folds the live position seen during catch-up into the cursor
// and lets live notifications move it from now on.
func (c *LiveSyncController) finishCatchUp(gen uint64) {
	c.remoteMu.Lock()
	defer c.remoteMu.Unlock()

	if !c.currentGen(gen) {
		return
	}
	if c.liveHigh != nil {
		c.advanceCursor(*c.liveHigh)
	}
	c.liveHigh = nil
	c.inSync = true
	c.pruneApplied()
}

// applyRemote merges remote notifications into the state. Own echoes are
// discarded, and a change older than one already applied for the same record
// is skipped so a slow catch-up never rolls back a live update. fromLog marks
// a catch-up page, which is contiguous from the previous cursor. It reports
// false when gen is no longer running.
func (c *LiveSyncController) applyRemote(gen uint64, changes []models.ChangeNotification, fromLog bool) bool {
	c.remoteMu.Lock()
	defer c.remoteMu.Unlock()

	if !c.currentGen(gen) {
		return false
	}
	if len(changes) == 0 {
		return true
	}

	var newest *models.ChangeCursor
	var deltas []models.Delta
	for _, n := range changes {
		if pos := n.Cursor(); newest == nil || pos.After(*newest) {
			newest = &pos
		}

		key := models.QueueKey{CollectionName: n.Change.Collection, ID: n.Change.ID}
		if last, ok := c.applied[key]; ok && n.At.Before(last) {
			continue
		}
		c.applied[key] = n.At

		if n.Origin == c.cfg.SessionID {
			continue
		}
		if !slices.Contains(c.cfg.Watched, n.Change.Collection) {
			continue
		}
		deltas = append(deltas, n.Change)
	}

	if len(deltas) > 0 {
		c.mergeRemote(deltas)
		c.logger.Debug().Str("func", "LiveSyncController.applyRemote").
			Int("deltas", len(deltas)).Bool("catch_up", fromLog).Msg("remote changes applied")
	}

	switch {
	case fromLog || c.inSync:
		c.advanceCursor(*newest)
		if c.inSync && len(c.applied) > maxAppliedKeys {
			c.pruneApplied()
		}
	case c.liveHigh == nil || newest.After(*c.liveHigh):
		c.liveHigh = newest
	}
	return true
}

// advanceCursor moves and persists the cursor when pos is later. Callers hold
// remoteMu.
func (c *LiveSyncController) advanceCursor(pos models.ChangeCursor) {
	if c.cursor != nil && !pos.After(*c.cursor) {
		return
	}
	c.cursor = &pos
	if err := store.SetJSON(context.Background(), c.store, cursorKey, pos); err != nil {
		c.logger.Err(err).Str("func", "LiveSyncController.advanceCursor").Msg("persist sync cursor")
	}
}

// pruneApplied drops apply times at or before the cursor. Changes that old
// are never pulled again. Callers hold remoteMu.
func (c *LiveSyncController) pruneApplied() {
	if c.cursor == nil {
		return
	}
	for key, at := range c.applied {
		if !at.After(c.cursor.At) {
			delete(c.applied, key)
		}
	}
}

// currentGen reports whether gen is still running.
func (c *LiveSyncController) currentGen(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isCurrent(gen)
}

func copyCursor(cursor *models.ChangeCursor) *models.ChangeCursor {
	if cursor == nil {
		return nil
	}
	cp := *cursor
	return &cp
}

// mergeRemote applies deltas with origin remote inside the applyingRemote
// state. Overlapping applications are a programming error.
func (c *LiveSyncController) mergeRemote(deltas []models.Delta) {
	if !c.apply.CompareAndSwap(int32(applyIdle), int32(applyingRemote)) {
		panic("live sync: overlapping remote apply")
	}
	defer func() {
		if !c.apply.CompareAndSwap(int32(applyingRemote), int32(applyIdle)) {
			panic("live sync: remote apply state corrupted")
		}
	}()

	c.state.ApplyDeltas(models.OriginRemote, deltas)
}

// onStateChange diffs a local edit and hands the deltas to the push worker.
// Remote-origin changes are never pushed back.
func (c *LiveSyncController) onStateChange(gen uint64, change StateChange) {
	if change.Origin == models.OriginRemote {
		return
	}

	deltas := ComputeDeltas(change.Prev, change.Curr, c.cfg.Watched)
	if len(deltas) == 0 {
		return
	}

	c.mu.Lock()
	if !c.isCurrent(gen) || c.lifecycle != models.LiveSyncActive {
		c.mu.Unlock()
		return
	}
	for _, d := range deltas {
		c.pending = append(c.pending, pushItem{delta: d})
	}
	wake := c.wake
	c.mu.Unlock()

	select {
	case wake <- struct{}{}:
	default:
	}
}

func (c *LiveSyncController) pushLoop(ctx context.Context, gen uint64, wake <-chan struct{}) {
	defer c.wg.Done()

	for {
		item, ok := c.nextPending(gen)
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-wake:
				continue
			}
		}
		c.push(ctx, gen, item)
	}
}

func (c *LiveSyncController) nextPending(gen uint64) (pushItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isCurrent(gen) || len(c.pending) == 0 {
		return pushItem{}, false
	}
	item := c.pending[0]
	c.pending = c.pending[1:]
	return item, true
}

// push delivers one delta. Offline, or on a transient failure, the delta
// goes to the offline queue; a delta the remote store rejects is dropped. A
// successful write clears any older queued entry for the same record so a
// later drain cannot overwrite it with stale data.
func (c *LiveSyncController) push(ctx context.Context, gen uint64, item pushItem) {
	d := item.delta
	key := models.QueueKey{CollectionName: d.Collection, ID: d.ID}
	bg := context.WithoutCancel(ctx)

	if !c.cfg.Online() {
		if err := c.queue.Enqueue(bg, models.QueueEntryFromDelta(d)); err != nil {
			c.logger.Err(err).Str("func", "LiveSyncController.push").Msg("queue offline delta")
		}
		return
	}

	issued := time.Now()
	callCtx, cancel := context.WithTimeout(bg, c.cfg.PushTimeout)
	var err error
	if d.Action == models.DeltaDelete {
		err = c.remote.Delete(callCtx, d.Collection, d.ID, c.cfg.SessionID)
	} else {
		err = c.remote.Save(callCtx, d.Collection, withID(d.Data, d.ID), c.cfg.SessionID)
	}
	cancel()

	c.mu.Lock()
	current := c.isCurrent(gen)
	c.mu.Unlock()

	if err != nil && isRejectedWrite(err) {
		c.logger.Error().Err(err).Str("func", "LiveSyncController.push").
			Str("collection", d.Collection).Str("id", d.ID).Msg("remote store rejected delta, dropped")
		return
	}

	if err != nil {
		c.logger.Warn().Err(err).Str("func", "LiveSyncController.push").
			Str("collection", d.Collection).Str("id", d.ID).Msg("push failed, delta queued")

		entry := models.QueueEntryFromDelta(d)
		if current {
			err = c.queue.Enqueue(bg, entry)
		} else {
			// Stop may already have queued a newer delta for this record
			_, err = c.queue.EnqueueIfAbsent(bg, entry)
		}
		if err != nil {
			c.logger.Err(err).Str("func", "LiveSyncController.push").Msg("queue failed delta")
		}
		return
	}

	if _, err = c.queue.DequeueOlder(bg, key, issued); err != nil {
		c.logger.Err(err).Str("func", "LiveSyncController.push").Msg("clear stale queue entry")
	}
}

// isCurrent reports whether gen is the running generation. Callers hold mu.
func (c *LiveSyncController) isCurrent(gen uint64) bool {
	return c.generation == gen && c.lifecycle != models.LiveSyncStopped
}
