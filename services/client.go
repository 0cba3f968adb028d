package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bellapacxx/tambola-backend/utils/logger"
)

// intentMessage is the inbound wire shape; which fields matter depends on
// the action.
type intentMessage struct {
	Action      string `json:"action"`
	Name        string `json:"name"`
	RoomCode    string `json:"roomCode"`
	Number      int    `json:"number"`
	RequesterID string `json:"requesterId"`
	Approved    bool   `json:"approved"`
}

// Client is one websocket connection with its read/write pumps.
type Client struct {
	id      string
	conn    *websocket.Conn
	hub     *Hub
	gateway *Gateway
	send    chan []byte
	once    sync.Once
}

func NewClient(id string, conn *websocket.Conn, hub *Hub, gateway *Gateway) *Client {
	return &Client{
		id:      id,
		conn:    conn,
		hub:     hub,
		gateway: gateway,
		send:    make(chan []byte, 32),
	}
}

// ID returns the connection's ephemeral identity.
func (c *Client) ID() string {
	return c.id
}

// Send queues a frame for the write pump, dropping it when the buffer is
// full so one slow client cannot stall a broadcast.
func (c *Client) Send(b []byte) {
	defer func() {
		if r := recover(); r != nil {
			// send was closed concurrently with a broadcast
			logger.Debugf("[Client %s] send on closed channel", c.id)
		}
	}()
	select {
	case c.send <- b:
	default:
		logger.Warnf("[Client %s] buffer full, dropping message", c.id)
	}
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// ReadPump reads intents off the socket and dispatches them until the
// connection dies, then triggers full disconnect cleanup.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c.id)
		c.gateway.Disconnect(c.id)
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Infof("[Client %s] disconnected", c.id)
			} else {
				logger.Warnf("[Client %s] read error: %v", c.id, err)
			}
			return
		}
		c.dispatch(raw)
	}
}

func (c *Client) dispatch(raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[Client %s] recovered from panic: %v", c.id, r)
		}
	}()

	var msg intentMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		logger.Warnf("[Client %s] invalid message: %v", c.id, err)
		return
	}

	switch msg.Action {
	case ActionCreateRoom:
		c.gateway.CreateRoom(c.id, msg.Name)
	case ActionRequestJoin:
		c.gateway.RequestJoin(c.id, msg.RoomCode, msg.Name)
	case ActionApproveJoin:
		c.gateway.ApproveJoin(c.id, msg.RequesterID, msg.Approved)
	case ActionStartGame:
		c.gateway.StartGame(c.id, msg.RoomCode)
	case ActionCallNumber:
		c.gateway.CallNumber(c.id, msg.RoomCode)
	case ActionMarkNumber:
		c.gateway.MarkNumber(c.id, msg.RoomCode, msg.Number)
	case ActionLeaveRoom:
		c.gateway.LeaveRoom(c.id, msg.RoomCode)
	default:
		logger.Warnf("[Client %s] unknown action: %q", c.id, msg.Action)
	}
}

// WritePump drains the send buffer onto the socket.
func (c *Client) WritePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Warnf("[Client %s] write error: %v", c.id, err)
			return
		}
	}
}
