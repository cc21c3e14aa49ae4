// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/gorilla/websocket"
)

const (
	subscribePath = "/api/subscribe"

	// pongWait bounds the silence tolerated between server pings.
	pongWait  = 60 * time.Second
	writeWait = 10 * time.Second
)

// Subscribe implements [RemoteDocumentClient]. It dials
// GET /api/subscribe as a websocket and decodes every text frame as a
// [models.ChangeNotification].
func (h *httpRemoteClient) Subscribe(ctx context.Context, scope models.SubscriptionScope, onChange func(models.ChangeNotification), onError func(error)) (UnsubscribeFunc, error) {
	wsURL, err := subscribeURL(h.baseURL, scope)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	if h.token != "" {
		header.Set("Authorization", "Bearer "+h.token)
	}

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: h.timeout,
	}

	conn, resp, err := dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			if mapped := mapStatus(resp.StatusCode, string(body)); mapped != nil {
				return nil, fmt.Errorf("subscribe: %w", mapped)
			}
		}
		return nil, fmt.Errorf("subscribe: %w: %v", ErrUnavailable, err)
	}

	sub := &subscription{conn: conn}
	go sub.readLoop(onChange, onError)

	h.logger.Debug().Str("func", "httpRemoteClient.Subscribe").
		Strs("collections", scope.Collections).Msg("live subscription opened")

	return sub.close, nil
}

func subscribeURL(baseURL string, scope models.SubscriptionScope) (string, error) {
	u, err := url.Parse(baseURL + subscribePath)
	if err != nil {
		return "", fmt.Errorf("subscribe url: %w", err)
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	if len(scope.Collections) > 0 {
		q := u.Query()
		q.Set("collections", strings.Join(scope.Collections, ","))
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

type subscription struct {
	conn   *websocket.Conn
	closed atomic.Bool
	once   sync.Once
}

func (s *subscription) close() {
	s.once.Do(func() {
		s.closed.Store(true)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		_ = s.conn.Close()
	})
}

func (s *subscription) readLoop(onChange func(models.ChangeNotification), onError func(error)) {
	defer s.close()

	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPingHandler(func(data string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		err := s.conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return err
	})

	for {
		var n models.ChangeNotification
		err := s.conn.ReadJSON(&n)
		if s.closed.Load() {
			return
		}
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("%w: %v", ErrSubscriptionEnded, err))
			}
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		if onChange != nil {
			onChange(n)
		}
	}
}
