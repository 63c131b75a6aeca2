package api

import (
	"net/http"

	"github.com/danieldin95/openmac/src/mac"
	"github.com/gorilla/mux"
)

// Stationer is what the HTTP surface needs from a running station.
type Stationer interface {
	UUID() string
	Mac() uint16
	Status() int
	Record() map[string]int64
	Time() int64
	Offset() int64
	UpTime() int64
	Command(cmd, val int) int
	Config() interface{}
}

// StatusSchema is the wire shape of GET /api/status and of every
// control-channel push.
type StatusSchema struct {
	UUID   string           `json:"uuid" yaml:"uuid"`
	Mac    uint16           `json:"mac" yaml:"mac"`
	Status int              `json:"status" yaml:"status"`
	Name   string           `json:"name" yaml:"name"`
	Time   int64            `json:"time" yaml:"time"`
	Offset int64            `json:"offset" yaml:"offset"`
	UpTime int64            `json:"uptime" yaml:"uptime"`
	Record map[string]int64 `json:"record" yaml:"record"`
}

func NewStatusSchema(station Stationer) StatusSchema {
	return StatusSchema{
		UUID:   station.UUID(),
		Mac:    station.Mac(),
		Status: station.Status(),
		Name:   mac.StatusName(station.Status()),
		Time:   station.Time(),
		Offset: station.Offset(),
		UpTime: station.UpTime(),
		Record: station.Record(),
	}
}

// CommandSchema is the body of POST /api/command and of commands sent
// up the control channel.
type CommandSchema struct {
	Cmd int `json:"cmd" yaml:"cmd"`
	Val int `json:"val" yaml:"val"`
}

type Link struct {
	Station Stationer
}

func (h Link) Router(router *mux.Router) {
	router.HandleFunc("/api/status", h.GetStatus).Methods("GET")
	router.HandleFunc("/api/config", h.GetConfig).Methods("GET")
	router.HandleFunc("/api/command", h.PostCommand).Methods("POST")
}

func (h Link) GetStatus(w http.ResponseWriter, r *http.Request) {
	Response(w, r, NewStatusSchema(h.Station))
}

func (h Link) GetConfig(w http.ResponseWriter, r *http.Request) {
	Response(w, r, h.Station.Config())
}

func (h Link) PostCommand(w http.ResponseWriter, r *http.Request) {
	command := &CommandSchema{}
	if err := GetData(r, command); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.Station.Command(command.Cmd, command.Val)
	ResponseMsg(w, r, h.Station.Status(), mac.StatusName(h.Station.Status()))
}
