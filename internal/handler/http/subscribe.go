// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/app"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/utils"
	"github.com/gorilla/websocket"
)

// subscribe handles GET /api/subscribe?collections=a,b. After the websocket
// upgrade every change in scope is written as one JSON text frame. The
// stream ends when the client goes away, the server shuts down or the hub
// drops the subscriber for falling behind.
func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tenantID, err := tenantFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.subscribe").Send()
		utils.WriteError(w, app.MsgNoTenantIDProvided, http.StatusUnauthorized)
		return
	}

	sub, err := h.services.DocumentService.Subscribe(ctx, tenantID, scopeFromQuery(r))
	if err != nil {
		h.writeServiceError(w, r, "*Handler.subscribe", err)
		return
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		log.Err(err).Str("func", "*Handler.subscribe").Msg(app.MsgSubscriptionFailed)
		return
	}
	defer conn.Close()

	log.Info().Str("func", "*Handler.subscribe").Str("tenant_id", tenantID).Msg("subscriber connected")

	// the read side only drains control frames and notices the client leaving
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case n := <-sub.C():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteJSON(n); err != nil {
				log.Err(err).Str("func", "*Handler.subscribe").Msg("write to subscriber failed")
				return
			}
		case <-ticker.C:
			if err = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Debug().Err(err).Str("func", "*Handler.subscribe").Msg("ping failed")
				return
			}
		case <-sub.Done():
			log.Warn().Str("func", "*Handler.subscribe").Str("tenant_id", tenantID).Msg("subscriber dropped")
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "subscriber fell behind"),
				time.Now().Add(writeWait))
			return
		case <-gone:
			log.Info().Str("func", "*Handler.subscribe").Str("tenant_id", tenantID).Msg("subscriber disconnected")
			return
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
