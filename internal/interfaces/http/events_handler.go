package httpinterface

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// demo daemon, any origin may subscribe
		return true
	},
}

// eventsHandler upgrades the connection to a websocket and streams every
// lifecycle event of the tracked transaction until the client goes away.
func (h *talesHandler) eventsHandler(
	w http.ResponseWriter, req *http.Request,
) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.WithError(err).Warn("http: trying to upgrade events connection")
		return
	}
	defer conn.Close()

	events := h.trackerSvc.SubscribeLifecycleEvents()
	defer h.trackerSvc.UnsubscribeLifecycleEvents(events)

	// drain the read side to detect the client closing the connection
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			body := toSnapshotResponse(
				event.State, event.Transaction, event.Warning,
			)
			if err := conn.WriteJSON(body); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
