// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func change(collection, id string) models.ChangeNotification {
	return models.ChangeNotification{
		Origin: "s",
		Change: models.Delta{Collection: collection, Action: models.DeltaUpdate, ID: id},
		At:     time.Now(),
	}
}

func TestChangeHub_ScopeFiltering(t *testing.T) {
	hub := NewChangeHub(8, logger.Nop())
	clients := hub.Subscribe("t", models.SubscriptionScope{Collections: []string{"clients"}})
	all := hub.Subscribe("t", models.SubscriptionScope{})

	hub.Publish("t", change("tickets", "T-1"))
	hub.Publish("t", change("clients", "C-1"))

	assert.Len(t, clients.C(), 1)
	assert.Len(t, all.C(), 2)
	assert.Equal(t, "C-1", (<-clients.C()).Change.ID)
}

func TestChangeHub_TenantIsolation(t *testing.T) {
	hub := NewChangeHub(8, logger.Nop())
	a := hub.Subscribe("a", models.SubscriptionScope{})
	b := hub.Subscribe("b", models.SubscriptionScope{})

	hub.Publish("a", change("clients", "C-1"))

	assert.Len(t, a.C(), 1)
	assert.Empty(t, b.C())
}

func TestChangeHub_SlowSubscriberIsDropped(t *testing.T) {
	hub := NewChangeHub(2, logger.Nop())
	slow := hub.Subscribe("t", models.SubscriptionScope{})

	for i := range 3 {
		hub.Publish("t", change("clients", string(rune('a'+i))))
	}

	select {
	case <-slow.Done():
	default:
		t.Fatal("slow subscriber was not dropped")
	}
	assert.Zero(t, hub.Len("t"))

	// publishing after the drop is safe
	hub.Publish("t", change("clients", "z"))
}

func TestChangeHub_CloseIsIdempotent(t *testing.T) {
	hub := NewChangeHub(0, logger.Nop())
	sub := hub.Subscribe("t", models.SubscriptionScope{})

	sub.Close()
	assert.NotPanics(t, sub.Close)
	assert.Zero(t, hub.Len("t"))
}

func TestChangeHub_ConcurrentPublishAndClose(t *testing.T) {
	hub := NewChangeHub(1, logger.Nop())

	var wg sync.WaitGroup
	for range 10 {
		sub := hub.Subscribe("t", models.SubscriptionScope{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 20 {
				hub.Publish("t", change("clients", "C-1"))
			}
		}()
		go func() {
			defer wg.Done()
			sub.Close()
		}()
	}
	wg.Wait()

	require.Zero(t, hub.Len("t"))
}
