package mux

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"holdem-server/internal/jwt"
	"holdem-server/pkg/room"
	"holdem-server/pkg/table"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestMux returns a mux with two tables on shift and a fresh set of keys
func newTestMux(t *testing.T) (*Mux, *httptest.Server) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pitBoss := room.NewPitBoss(room.NewMemoryLedger(1000), testLogger())
	for _, id := range []string{"micro", "low"} {
		opts := table.DefaultOptions()
		opts.ShowdownDelay = 0
		tbl, err := table.New(id, strings.ToUpper(id), opts, testLogger(), nil)
		require.NoError(t, err)
		pitBoss.AddTable(tbl)
	}

	pitBoss.StartShift()
	t.Cleanup(pitBoss.EndShift)

	m := NewMux("v1.2.3", pitBoss, jwt.NewKeys(privateKey))
	ts := httptest.NewServer(m)
	t.Cleanup(ts.Close)

	return m, ts
}

// newTestPlayer opens an account and returns a signed token for it
func newTestPlayer(t *testing.T, m *Mux, name string) (room.Player, string) {
	t.Helper()

	id, _ := m.pitBoss.Ledger().Open()
	token, err := m.keys.Sign(id, name)
	require.NoError(t, err)

	return room.Player{ID: id, Name: name}, token
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case nil:
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return nil
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}
