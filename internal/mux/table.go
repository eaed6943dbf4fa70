package mux

import (
	"context"
	"holdem-server/pkg/room"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const snapshotTimeout = time.Second * 5

// getTable lists the tables of the room
func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		tables := m.pitBoss.Tables()
		if start > int64(len(tables)) {
			start = int64(len(tables))
		}

		tables = tables[start:]
		if len(tables) > rows {
			tables = tables[:rows]
		}

		writeJSON(w, http.StatusOK, tables)
	}
}

// getTableID returns the public state of a table
func (m *Mux) getTableID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)

		ctx, cancel := context.WithTimeout(r.Context(), snapshotTimeout)
		defer cancel()

		state, err := dealer.Snapshot(ctx)
		if err != nil {
			if errors.Is(err, room.ErrDealerClosed) {
				writeJSONError(w, http.StatusServiceUnavailable, err)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, errors.Wrap(err, "could not get table snapshot"))
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}
