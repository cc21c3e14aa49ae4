// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/models"
)

const defaultSubscriberBuffer = 256

// ChangeHub fans change notifications out to the live subscribers of a
// tenant. A subscriber whose buffer is full is dropped; it reconnects and
// catches up through the changes endpoint.
type ChangeHub struct {
	mu     sync.RWMutex
	subs   map[string]map[uint64]*Subscription
	nextID uint64
	buffer int

	logger *logger.Logger
}

func NewChangeHub(buffer int, logger *logger.Logger) *ChangeHub {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &ChangeHub{
		subs:   make(map[string]map[uint64]*Subscription),
		buffer: buffer,
		logger: logger.WithComponent("change-hub"),
	}
}

// Subscription is one live listener. Notifications arrive on C until Done is
// closed, either by Close or because the hub dropped a slow reader.
type Subscription struct {
	id       uint64
	tenantID string
	scope    models.SubscriptionScope

	ch   chan models.ChangeNotification
	done chan struct{}
	once sync.Once
	hub  *ChangeHub
}

// C returns the notification channel.
func (s *Subscription) C() <-chan models.ChangeNotification {
	return s.ch
}

// Done is closed when the subscription ends.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close unregisters the subscription. It is idempotent.
func (s *Subscription) Close() {
	s.hub.remove(s)
}

// Subscribe registers a listener for tenantID limited to scope.
func (h *ChangeHub) Subscribe(tenantID string, scope models.SubscriptionScope) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		id:       h.nextID,
		tenantID: tenantID,
		scope:    scope,
		ch:       make(chan models.ChangeNotification, h.buffer),
		done:     make(chan struct{}),
		hub:      h,
	}
	if h.subs[tenantID] == nil {
		h.subs[tenantID] = make(map[uint64]*Subscription)
	}
	h.subs[tenantID][sub.id] = sub

	return sub
}

// Publish delivers n to every subscriber of tenantID whose scope includes the
// changed collection. It never blocks.
func (h *ChangeHub) Publish(tenantID string, n models.ChangeNotification) {
	var slow []*Subscription

	h.mu.RLock()
	for _, sub := range h.subs[tenantID] {
		if !sub.scope.Includes(n.Change.Collection) {
			continue
		}
		select {
		case sub.ch <- n:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		h.logger.Warn().Str("func", "ChangeHub.Publish").Str("tenant_id", tenantID).
			Uint64("subscription", sub.id).Msg("dropping slow subscriber")
		h.remove(sub)
	}
}

// Len returns the number of live subscribers of tenantID.
func (h *ChangeHub) Len(tenantID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[tenantID])
}

func (h *ChangeHub) remove(sub *Subscription) {
	sub.once.Do(func() {
		h.mu.Lock()
		delete(h.subs[sub.tenantID], sub.id)
		if len(h.subs[sub.tenantID]) == 0 {
			delete(h.subs, sub.tenantID)
		}
		h.mu.Unlock()
		close(sub.done)
	})
}
