package mux

import (
	"errors"
	"holdem-server/internal/rng"
	"holdem-server/internal/util"
	"holdem-server/pkg/room"
	"net/http"
	"regexp"
	"strings"
	"time"
)

type playerPayload struct {
	DisplayName string `json:"displayName"`
}

type playerResponse struct {
	Player   room.Player `json:"player"`
	Token    string      `json:"token,omitempty"`
	Bankroll int         `json:"bankroll"`
}

var validDisplayNameRx = regexp.MustCompile(`^[\p{L}\p{N} ]{0,40}\z`)

// postPlayer creates a guest player with a fresh bankroll
func (m *Mux) postPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp playerPayload
		if r.ContentLength != 0 {
			if !decodeRequest(w, r, &pp) {
				return
			}
		}

		displayName := strings.TrimSpace(pp.DisplayName)
		if !validDisplayNameRx.MatchString(displayName) {
			writeJSONError(w, http.StatusBadRequest, errors.New("display name must only contain letters, numbers, and spaces, and be 40 characters or less"))
			return
		}

		if !m.allowPlayerCreate(remoteAddr(r), time.Now()) {
			writeJSONError(w, http.StatusTooManyRequests, errors.New("please wait before creating another player"))
			return
		}

		if displayName == "" {
			displayName = util.GetRandomName(rng.Crypto{})
		}

		id, bankroll := m.pitBoss.Ledger().Open()
		token, err := m.keys.Sign(id, displayName)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, playerResponse{
			Player:   room.Player{ID: id, Name: displayName},
			Token:    token,
			Bankroll: bankroll,
		})
	}
}

// allowPlayerCreate throttles guest creation per remote address
func (m *Mux) allowPlayerCreate(addr string, now time.Time) bool {
	m.createdLock.Lock()
	defer m.createdLock.Unlock()

	if at, found := m.createdAt[addr]; found && now.Sub(at) < m.config.playerCreateDelay {
		return false
	}

	m.createdAt[addr] = now
	return true
}

func (m *Mux) getPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player := playerFromContext(r.Context())

		bankroll, err := m.pitBoss.Ledger().Balance(player.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, playerResponse{
			Player:   player,
			Bankroll: bankroll,
		})
	}
}
