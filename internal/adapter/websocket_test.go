// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{}

func TestSubscribeURL(t *testing.T) {
	got, err := subscribeURL("https://sync.example.com", models.SubscriptionScope{Collections: []string{"clients", "tickets"}})
	require.NoError(t, err)
	assert.Equal(t, "wss://sync.example.com/api/subscribe?collections=clients%2Ctickets", got)

	got, err = subscribeURL("http://127.0.0.1:8080", models.SubscriptionScope{})
	require.NoError(t, err)
	assert.Equal(t, "ws://127.0.0.1:8080/api/subscribe", got)
}

func TestSubscribe_ReceivesNotifications(t *testing.T) {
	sent := models.ChangeNotification{
		Origin: "peer",
		Change: models.Delta{Collection: "clients", Action: models.DeltaInsert, ID: "C-1", Data: models.Document{"id": "C-1"}},
		At:     time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/subscribe", r.URL.Path)
		assert.Equal(t, "clients", r.URL.Query().Get("collections"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.WriteJSON(sent))
		// keep the connection open until the client closes it
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	received := make(chan models.ChangeNotification, 1)
	errs := make(chan error, 1)

	c := newTestClient(t, srv.URL)
	unsubscribe, err := c.Subscribe(context.Background(), models.SubscriptionScope{Collections: []string{"clients"}},
		func(n models.ChangeNotification) { received <- n },
		func(err error) { errs <- err },
	)
	require.NoError(t, err)

	select {
	case n := <-received:
		assert.Equal(t, "peer", n.Origin)
		assert.Equal(t, "C-1", n.Change.ID)
		assert.Equal(t, models.DeltaInsert, n.Change.Action)
	case <-time.After(5 * time.Second):
		t.Fatal("notification not received")
	}

	unsubscribe()
	unsubscribe()

	select {
	case err := <-errs:
		t.Fatalf("unexpected error after unsubscribe: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscribe_ServerCloseReportsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		_ = conn.Close()
	}))
	defer srv.Close()

	errs := make(chan error, 1)
	c := newTestClient(t, srv.URL)
	unsubscribe, err := c.Subscribe(context.Background(), models.SubscriptionScope{}, nil, func(err error) { errs <- err })
	require.NoError(t, err)
	defer unsubscribe()

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrSubscriptionEnded)
	case <-time.After(5 * time.Second):
		t.Fatal("error not reported")
	}
}

func TestSubscribe_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Subscribe(context.Background(), models.SubscriptionScope{}, nil, nil)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSubscribe_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url)
	_, err := c.Subscribe(context.Background(), models.SubscriptionScope{}, nil, nil)

	assert.ErrorIs(t, err, ErrUnavailable)
}
