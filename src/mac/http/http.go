package http

import (
	"net/http"
	"time"

	"github.com/danieldin95/openmac/src/libom"
	"github.com/danieldin95/openmac/src/mac/api"
	"github.com/gorilla/mux"
)

// Http serves the station's status and command surface.
type Http struct {
	station api.Stationer
	listen  string
	server  *http.Server
	router  *mux.Router
	out     *libom.SubLogger
}

func NewHttp(station api.Stationer, listen string) *Http {
	return &Http{
		station: station,
		listen:  listen,
		out:     libom.NewSubLogger("http"),
	}
}

func (h *Http) Initialize() {
	r := h.Router()
	if h.server == nil {
		h.server = &http.Server{
			Addr:         h.listen,
			Handler:      r,
			ReadTimeout:  5 * time.Minute,
			WriteTimeout: 10 * time.Minute,
		}
	}
	h.LoadRouter()
}

func (h *Http) Router() *mux.Router {
	if h.router == nil {
		h.router = mux.NewRouter()
	}
	return h.router
}

func (h *Http) LoadRouter() {
	router := h.Router()
	api.Link{Station: h.station}.Router(router)
	api.Ctrl{Station: h.station}.Router(router)
}

func (h *Http) Start() {
	h.Initialize()
	libom.Go(func() {
		h.out.Info("Http.Start: %s", h.listen)
		if err := h.server.ListenAndServe(); err != nil {
			h.out.Warn("Http.Start: %s", err)
		}
	})
}

func (h *Http) Shutdown() {
	if h.server != nil {
		h.out.Info("Http.Shutdown: %s", h.listen)
		if err := h.server.Close(); err != nil {
			h.out.Error("Http.Shutdown: %s", err)
		}
	}
}
