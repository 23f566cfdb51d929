package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"career-dash/internal/domain/notification"
	"career-dash/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokens map[string]uuid.UUID

func (s stubTokens) ValidateAccessToken(token string) (jwt.Claims, error) {
	id, ok := s[token]
	if !ok {
		return jwt.Claims{}, errors.New("bad token")
	}
	return jwt.Claims{UserID: id}, nil
}

func testServer(t *testing.T, h *Handler, tokens stubTokens) func(token string) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := tokens.ValidateAccessToken(r.URL.Query().Get("token"))
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Serve(conn, claims)
	}))
	t.Cleanup(server.Close)

	return func(token string) *websocket.Conn {
		t.Helper()
		url := "ws" + strings.TrimPrefix(server.URL, "http") + "?token=" + token
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}
}

func waitForCount(hub *Hub, userID string, expected int) bool {
	for range 200 {
		if hub.UserClientCount(userID) == expected {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestHub_DeliversOnlyToTargetUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(nil)
	go hub.Run(ctx)

	alice, bob := uuid.New(), uuid.New()
	tokens := stubTokens{"alice": alice, "bob": bob}
	dial := testServer(t, NewHandler(ctx, hub, tokens, nil, nil), tokens)

	aliceConn := dial("alice")
	bobConn := dial("bob")
	require.True(t, waitForCount(hub, alice.String(), 1))
	require.True(t, waitForCount(hub, bob.String(), 1))

	hub.Deliver(alice.String(), notification.Info("Skill reminder", "Time to work on Go."))

	_ = aliceConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := aliceConn.ReadMessage()
	require.NoError(t, err)

	var got NotificationMessage
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "notification", got.Type)
	assert.Equal(t, "Time to work on Go.", got.Message)

	_ = bobConn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = bobConn.ReadMessage()
	assert.Error(t, err, "bob must not receive alice's notification")
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(nil)
	go hub.Run(ctx)

	user := uuid.New()
	tokens := stubTokens{"t": user}
	dial := testServer(t, NewHandler(ctx, hub, tokens, nil, nil), tokens)

	conn := dial("t")
	require.True(t, waitForCount(hub, user.String(), 1))

	require.NoError(t, conn.Close())
	assert.True(t, waitForCount(hub, user.String(), 0))
	assert.Equal(t, 0, hub.ClientCount())
}

func TestClient_SendAfterCloseFails(t *testing.T) {
	c := NewClient(NewHub(nil), nil, "u")
	assert.True(t, c.Send([]byte("x")))
	c.closeSend()
	c.closeSend()
	assert.False(t, c.Send([]byte("y")))
}
