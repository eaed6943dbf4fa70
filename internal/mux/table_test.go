package mux

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"holdem-server/pkg/room"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSeat struct {
	PlayerID    int64  `json:"playerId"`
	Name        string `json:"name"`
	ChipsInPlay int    `json:"chipsInPlay"`
}

type testTableState struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Seats []*testSeat `json:"seats"`
}

func Test_getTable(t *testing.T) {
	m, ts := newTestMux(t)
	_, token := newTestPlayer(t, m, "Alice")

	var tables []room.TableSummary
	assertGet(t, ts, "/table", &tables, 200, token)
	if assert.Len(t, tables, 2) {
		assert.Equal(t, "micro", tables[0].ID)
		assert.Equal(t, "low", tables[1].ID)
		assert.Equal(t, 2, tables[0].BigBlind)
	}

	assertGet(t, ts, "/table?start=1&rows=1", &tables, 200, token)
	if assert.Len(t, tables, 1) {
		assert.Equal(t, "low", tables[0].ID)
	}

	tables = nil
	assertGet(t, ts, "/table?start=5", &tables, 200, token)
	assert.Len(t, tables, 0)

	// bad pagination
	var err errorResponse
	assertGet(t, ts, "/table?start=-1", &err, 400, token)
	assert.Equal(t, "start cannot be less than zero", err.Message)

	assertGet(t, ts, "/table", nil, 401)
}

func Test_getTableID(t *testing.T) {
	m, ts := newTestMux(t)
	_, token := newTestPlayer(t, m, "Alice")

	var state testTableState
	assertGet(t, ts, "/table/low", &state, 200, token)
	assert.Equal(t, "low", state.ID)
	assert.Equal(t, "LOW", state.Name)
	assert.Len(t, state.Seats, 10)

	var errObj errorResponse
	assertGet(t, ts, "/table/missing", &errObj, 404, token)
	assert.Equal(t, "Not Found", errObj.Message)
}

type testResponse struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

func dialTable(t *testing.T, serverURL, tableID, token string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/table/" + tableID + "/ws?access_token=" + url.QueryEscape(token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

// readUntil reads messages until one has the key
func readUntil(t *testing.T, conn *websocket.Conn, key string) testResponse {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var msg testResponse
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Key == key {
			return msg
		}
	}
}

func Test_getTableIDWS(t *testing.T) {
	m, ts := newTestMux(t)
	player, token := newTestPlayer(t, m, "Alice")

	conn := dialTable(t, ts.URL, "micro", token)

	msg := readUntil(t, conn, "tableSnapshot")
	assert.Equal(t, "micro", msg.Data.(map[string]interface{})["id"])

	msg = readUntil(t, conn, "bankroll")
	assert.Equal(t, float64(1000), msg.Data)

	require.NoError(t, conn.WriteJSON(room.PayloadIn{
		Action:         "join",
		AdditionalData: room.AdditionalData{"seat": 3, "buyIn": 150},
		Context:        "join-1",
	}))

	// the bankroll is updated before the command is acknowledged
	msg = readUntil(t, conn, "bankroll")
	assert.Equal(t, float64(850), msg.Data)

	msg = readUntil(t, conn, "status")
	assert.Equal(t, "OK", msg.Value)
	assert.Equal(t, "join-1", msg.Context)

	// malformed messages are answered and the connection survives
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("nope")))
	msg = readUntil(t, conn, "error")
	assert.Equal(t, "could not parse message", msg.Value)

	require.NoError(t, conn.WriteJSON(room.PayloadIn{Action: "dance", Context: "bad"}))
	msg = readUntil(t, conn, "error")
	assert.Equal(t, "unknown action: dance", msg.Value)
	assert.Equal(t, "bad", msg.Context)

	var state testTableState
	assertGet(t, ts, "/table/micro", &state, 200, token)
	if assert.NotNil(t, state.Seats[3]) {
		assert.Equal(t, player.ID, state.Seats[3].PlayerID)
		assert.Equal(t, 150, state.Seats[3].ChipsInPlay)
	}

	// disconnecting leaves the table and returns the chips
	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		balance, err := m.pitBoss.Ledger().Balance(player.ID)
		return err == nil && balance == 1000
	}, 2*time.Second, 10*time.Millisecond)
}

func Test_getTableIDWS_unauthorized(t *testing.T) {
	_, ts := newTestMux(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/table/micro/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.Error(t, err)
	if assert.NotNil(t, resp) {
		assert.Equal(t, 401, resp.StatusCode)
	}
}
