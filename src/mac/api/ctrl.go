package api

import (
	"time"

	"github.com/danieldin95/openmac/src/libom"
	"github.com/gorilla/mux"
	"golang.org/x/net/websocket"
)

// Ctrl is the duplex control channel: the station pushes its status
// once a second and applies CommandSchema messages coming back up, so
// a watcher never has to poll.
type Ctrl struct {
	Station Stationer
}

func (h Ctrl) Router(router *mux.Router) {
	router.Handle("/api/ctrl", websocket.Handler(h.Handle))
}

func (h Ctrl) Handle(ws *websocket.Conn) {
	defer ws.Close()
	out := libom.NewSubLogger("ctrl")
	remote := "?"
	if req := ws.Request(); req != nil {
		remote = req.RemoteAddr
	}
	out.Info("Ctrl.Handle: accept %s", remote)
	done := make(chan bool)
	libom.Go(func() {
		defer close(done)
		for {
			command := &CommandSchema{}
			if err := websocket.JSON.Receive(ws, command); err != nil {
				out.Debug("Ctrl.Handle: recv: %s", err)
				return
			}
			h.Station.Command(command.Cmd, command.Val)
		}
	})
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			out.Info("Ctrl.Handle: closed %s", remote)
			return
		case <-ticker.C:
			if err := websocket.JSON.Send(ws, NewStatusSchema(h.Station)); err != nil {
				out.Info("Ctrl.Handle: closed %s: %s", remote, err)
				return
			}
		}
	}
}
