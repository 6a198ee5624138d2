// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"log"
	"net/http"
)

func (h *Hub) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	if s := h.snapshot(); s != nil {
		_, _ = w.Write(s.status)
	}
}

func (h *Hub) ServeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade error", err)
		return
	}

	c := NewSocketClient(h, conn)
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
	}
}
