package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/spunky-sabin/clash-clone/internal/converter"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// CORS already gates browsers on the regular routes
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWatch streams a countdown once per tick. The first client message
// is the analyze request. The stream ends when the client goes away.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("watch upgrade: %v", err)
		return
	}
	defer conn.Close()

	var req converter.AnalyzeRequest
	if err := conn.ReadJSON(&req); err != nil {
		writeError(conn, "Invalid request body")
		return
	}
	p, err := Prepare(req)
	if err != nil {
		writeError(conn, err.Error())
		return
	}

	// the reader only notices the client closing
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		report, err := p.Run(s.catalog, s.clock())
		if err != nil {
			writeError(conn, err.Error())
			return
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(converter.CountdownFromReport(report)); err != nil {
			return
		}

		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

func writeError(conn *websocket.Conn, msg string) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteJSON(converter.ErrorDTO{Error: msg})
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
