package api

import (
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/dmdmdm-nz/usbnetd/internal/nwapi"
)

// StreamSearch runs one search and sends every report, the terminal one
// included, as a JSON text message. The connection is closed normally once
// the search completes.
func StreamSearch(s *Service, w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.WithError(err).Error("Failed to accept client")
		return
	}
	defer c.CloseNow()

	// Clients only listen; any message from them or a close ends the stream.
	ctx := c.CloseRead(r.Context())

	token := uuid.NewString()
	logger := log.WithField("token", token)
	logger.Debug("Streaming search")

	q := s.search(token)
	defer q.Close()

	sent := 0
	for {
		select {
		case <-ctx.Done():
			logger.Info("WebSocket connection closed by client")
			return
		case rep, ok := <-q.Chan():
			if !ok {
				logger.WithField("reports", sent).Debug("Search stream complete")
				_ = c.Close(websocket.StatusNormalClosure, "search complete")
				return
			}
			b, err := json.Marshal(NewNetworkInfo(rep))
			if err != nil {
				logger.WithError(err).Error("Failed to encode report")
				return
			}
			if err := c.Write(ctx, websocket.MessageText, b); err != nil {
				logger.WithError(err).Warn("Failed to send report")
				return
			}
			sent++
			if rep.Status != nwapi.SearchContinue {
				_ = c.Close(websocket.StatusNormalClosure, "search complete")
				return
			}
		}
	}
}
