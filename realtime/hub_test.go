package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesOnlyTopicSubscribers(t *testing.T) {
	hub := NewHub()

	mine, unsubMine := hub.Subscribe(NotificationsTopic("u1"))
	defer unsubMine()
	theirs, unsubTheirs := hub.Subscribe(NotificationsTopic("u2"))
	defer unsubTheirs()

	n := hub.Publish(NotificationsTopic("u1"), map[string]string{"message": "hi"})
	assert.Equal(t, 1, n)

	select {
	case msg := <-mine:
		assert.JSONEq(t, `{"message":"hi"}`, string(msg))
	default:
		t.Fatal("expected a message for u1")
	}

	select {
	case <-theirs:
		t.Fatal("u2 should not receive u1's notification")
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	ch, unsubscribe := hub.Subscribe(OrdersTopic)
	assert.Equal(t, 1, hub.Subscribers(OrdersTopic))

	unsubscribe()
	unsubscribe()

	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, hub.Subscribers(OrdersTopic))
	assert.Zero(t, hub.Publish(OrdersTopic, "ignored"))
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	_, unsubscribe := hub.Subscribe(OrdersTopic)
	defer unsubscribe()

	for i := 0; i < defaultBuffer; i++ {
		require.Equal(t, 1, hub.Publish(OrdersTopic, i))
	}
	assert.Zero(t, hub.Publish(OrdersTopic, "overflow"))
}

func TestTopicNames(t *testing.T) {
	assert.Equal(t, "reviews:42", ReviewsTopic(42))
	assert.Equal(t, "wishlist:u1", WishlistTopic("u1"))
}

func TestHandlerStreamsSnapshotThenEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()

	r := gin.New()
	r.GET("/ws/orders", Handler(hub,
		func(c *gin.Context) (string, bool) { return OrdersTopic, true },
		func(c *gin.Context) (interface{}, error) { return []int{1, 2}, nil },
	))
	r.GET("/ws/denied", Handler(hub,
		func(c *gin.Context) (string, bool) { return "", false },
		nil,
	))

	srv := httptest.NewServer(r)
	defer srv.Close()
	base := "ws" + strings.TrimPrefix(srv.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(base+"/ws/denied", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(base+"/ws/orders", nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, first, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(first))

	require.Eventually(t, func() bool { return hub.Subscribers(OrdersTopic) == 1 }, time.Second, 10*time.Millisecond)
	hub.Publish(OrdersTopic, map[string]int{"id": 7})

	_, next, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7}`, string(next))
}

func TestHandlerKeepsEventsPublishedDuringSnapshot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()

	r := gin.New()
	r.GET("/ws/orders", Handler(hub,
		func(c *gin.Context) (string, bool) { return OrdersTopic, true },
		func(c *gin.Context) (interface{}, error) {
			// a write landing while the snapshot query runs
			hub.Publish(OrdersTopic, map[string]string{"type": "order_created"})
			return []int{}, nil
		},
	))

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/orders", nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, first, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(first))

	_, next, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"order_created"}`, string(next))
}
