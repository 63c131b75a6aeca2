package main

import (
	"time"

	"github.com/danieldin95/openmac/src/air"
	"github.com/danieldin95/openmac/src/cli/config"
	"github.com/danieldin95/openmac/src/libom"
)

func main() {
	c := config.NewAir()
	hub := air.NewHub()
	hub.SetLoss(c.Loss)
	hub.SetAirtime(time.Duration(c.Airtime) * time.Millisecond)
	server := air.NewServer(hub, c.Listen, c.Protocol)
	server.Start()
	libom.Wait()
	server.Close()
}
