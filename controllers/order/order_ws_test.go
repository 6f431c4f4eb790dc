package orderControllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzloop13-dot/LZ-Loop/models"
)

func waitForFeedClients(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		wsMu.Lock()
		got := len(wsClients)
		wsMu.Unlock()
		if got >= n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("websocket client never registered")
}

func TestOrderFeedBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", OrderFeedHandler)
	srv := httptest.NewServer(r)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	waitForFeedClients(t, 1)

	order := models.Order{ID: "ord_1", Status: models.OrderStatusPaid}

	// Broadcast from another goroutine while a second client registers; the
	// feed must survive connect/broadcast running concurrently.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			BroadcastOrderPaid(order)
		}
	}()
	conn2, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn2.Close()
	<-done

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var evt orderEvent
	require.NoError(t, json.Unmarshal(data, &evt))
	assert.Equal(t, "order.paid", evt.Event)
	assert.Equal(t, "ord_1", evt.Order.ID)
}
