// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 5 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 8) / 10

	// If more than this many messages are queued for sending, the
	// socket is congested and messages may be dropped
	socketCongestionThreshold = 5

	// Allows a few seconds of feed to back up before close
	socketBufferSize = 16

	// Maximum message size allowed from peer. Peers have nothing to say.
	maxMessageSize = 512

	debugSocket = false
)

var upgrader = websocket.Upgrader{
	// Debug feed is read only
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: time.Second,
	ReadBufferSize:   maxMessageSize,
	WriteBufferSize:  2048,
}

// SocketClient is a middleman between the websocket connection and the hub.
type SocketClient struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	once    sync.Once
	counter int // counts up every send
}

// Create a SocketClient from a connection
func NewSocketClient(hub *Hub, conn *websocket.Conn) *SocketClient {
	return &SocketClient{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, socketBufferSize),
	}
}

// Close is called by the hub once the client is unregistered.
func (client *SocketClient) Close() {
	close(client.send)
}

// Destroy unregisters the client and closes the connection. Safe to call more than once.
func (client *SocketClient) Destroy() {
	client.once.Do(func() {
		hub := client.hub

		// Needs to go through when called on hub goroutine.
		select {
		case hub.unregister <- client:
		case <-hub.done:
		default:
			go func() {
				select {
				case hub.unregister <- client:
				case <-hub.done:
				}
			}()
		}

		_ = client.conn.Close()
	})
}

func (client *SocketClient) Init() {
	go client.writePump()
	go client.readPump()
}

// Send queues an encoded message. Only call from the hub goroutine.
func (client *SocketClient) Send(message []byte) {
	// How many messages there are in excess of a reasonable amount
	congestion := len(client.send) - socketCongestionThreshold

	// The closer the buffer is to being full, the more messages
	// we drop on the floor (to give the socket a chance to
	// catch up)
	client.counter++
	if congestion > 1 && client.counter%congestion != 0 {
		// The next feed replaces it anyway
		if debugSocket {
			log.Println("SocketClient dropping message due to congestion")
		}
		return
	}

	select {
	case client.send <- message:
	default:
		// Not responsive
		if debugSocket {
			log.Println("SocketClient is not responsive")
		}
		client.Destroy()
	}
}

func (client *SocketClient) readPump() {
	defer client.Destroy()
	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Messages are read only to notice pongs and closes.
	for {
		if _, _, err := client.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Println("close error:", err)
			}
			return
		}
	}
}

func (client *SocketClient) writePump() {
	pingTicker := time.NewTicker(pingPeriod)
	defer func() {
		pingTicker.Stop()
		client.Destroy()
	}()

	for {
		select {
		case message, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = client.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}

			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				if debugSocket {
					log.Println("send error:", err)
				}
				return
			}
		case <-pingTicker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
