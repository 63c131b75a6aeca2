package config

import (
	"flag"

	"github.com/danieldin95/openmac/src/libom"
)

// Station configures one link-layer node.
type Station struct {
	Alias          string `json:"alias,omitempty"`
	Mac            int    `json:"mac"`
	Channel        string `json:"channel"`
	Protocol       string `json:"protocol,omitempty"`
	BeaconInterval int    `json:"beaconInterval"` // seconds; -1 disables
	Debug          int    `json:"debug"`          // 0 none, 1 errors, 2 full
	MaxSlots       bool   `json:"maxSlots"`       // deterministic backoff slots
	Http           string `json:"http,omitempty"`
	Log            Log    `json:"log"`
	Terminal       string `json:"-"`
	SaveFile       string `json:"-"`
}

var sd = &Station{
	Mac:            0x0001,
	Channel:        "127.0.0.1:10100",
	Protocol:       "tcp", // tcp or kcp
	BeaconInterval: -1,
	Http:           "127.0.0.1:10180",
	Log: Log{
		File:    "./openmac-station.log",
		Verbose: libom.INFO,
	},
	SaveFile: "./station.json",
	Terminal: "on",
}

func NewStation() (c *Station) {
	c = &Station{}
	flag.StringVar(&c.Alias, "alias", sd.Alias, "alias for this station")
	flag.IntVar(&c.Mac, "mac", sd.Mac, "station MAC address (1..65534)")
	flag.StringVar(&c.Channel, "chan", sd.Channel, "channel daemon to attach to")
	flag.StringVar(&c.Protocol, "proto", sd.Protocol, "channel protocol")
	flag.IntVar(&c.BeaconInterval, "beacon", sd.BeaconInterval, "beacon interval in seconds, -1 disables")
	flag.IntVar(&c.Debug, "debug", sd.Debug, "debug level: 0 none, 1 errors, 2 full")
	flag.BoolVar(&c.MaxSlots, "maxslots", sd.MaxSlots, "always back off the maximum slots")
	flag.StringVar(&c.Http, "http", sd.Http, "status api listen address")
	flag.StringVar(&c.Terminal, "terminal", sd.Terminal, "run interactive terminal")
	flag.IntVar(&c.Log.Verbose, "log:level", sd.Log.Verbose, "log level")
	flag.StringVar(&c.Log.File, "log:file", sd.Log.File, "log saved to file")
	flag.StringVar(&c.SaveFile, "conf", sd.SaveFile, "the configuration file")
	flag.Parse()
	c.Initialize()
	return c
}

func (c *Station) Initialize() {
	LoadFile(c, c.SaveFile)
	c.Default()
	libom.Init(c.Log.File, c.Log.Verbose)
}

func (c *Station) Default() {
	if c.Channel == "" {
		c.Channel = sd.Channel
	}
	if c.Protocol == "" {
		c.Protocol = sd.Protocol
	}
	if c.Alias == "" {
		c.Alias = GetAlias()
	}
}

func (c *Station) Id() string {
	return c.Alias + "@" + c.Channel
}
