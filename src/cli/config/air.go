package config

import (
	"flag"

	"github.com/danieldin95/openmac/src/libom"
)

// Air configures the shared-medium daemon.
type Air struct {
	Listen   string  `json:"listen"`
	Protocol string  `json:"protocol,omitempty"`
	Loss     float64 `json:"loss"`    // fraction of deliveries dropped
	Airtime  int     `json:"airtime"` // ms one frame occupies the medium
	Log      Log     `json:"log"`
	SaveFile string  `json:"-"`
}

var ad = &Air{
	Listen:   "0.0.0.0:10100",
	Protocol: "tcp",
	Airtime:  5,
	Log: Log{
		File:    "./openmac-air.log",
		Verbose: libom.INFO,
	},
	SaveFile: "./air.json",
}

func NewAir() (c *Air) {
	c = &Air{}
	flag.StringVar(&c.Listen, "listen", ad.Listen, "listen address for stations")
	flag.StringVar(&c.Protocol, "proto", ad.Protocol, "channel protocol: tcp or kcp")
	flag.Float64Var(&c.Loss, "loss", ad.Loss, "fraction of frames lost on the air")
	flag.IntVar(&c.Airtime, "airtime", ad.Airtime, "ms one frame occupies the medium")
	flag.IntVar(&c.Log.Verbose, "log:level", ad.Log.Verbose, "log level")
	flag.StringVar(&c.Log.File, "log:file", ad.Log.File, "log saved to file")
	flag.StringVar(&c.SaveFile, "conf", ad.SaveFile, "the configuration file")
	flag.Parse()
	c.Initialize()
	return c
}

func (c *Air) Initialize() {
	LoadFile(c, c.SaveFile)
	c.Default()
	libom.Init(c.Log.File, c.Log.Verbose)
}

func (c *Air) Default() {
	if c.Listen == "" {
		c.Listen = ad.Listen
	}
	if c.Protocol == "" {
		c.Protocol = ad.Protocol
	}
	if c.Airtime <= 0 {
		c.Airtime = ad.Airtime
	}
}
