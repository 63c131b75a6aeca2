package main

import (
	"github.com/danieldin95/openmac/src/cli/config"
	"github.com/danieldin95/openmac/src/libom"
	"github.com/danieldin95/openmac/src/station"
)

func main() {
	c := config.NewStation()
	s := station.NewStation(c)
	if err := s.Initialize(); err != nil {
		libom.Fatal("station: %s", err)
		return
	}
	s.Start()
	if c.Terminal == "on" {
		t := station.NewTerminal(s)
		t.Start()
	} else {
		libom.Wait()
	}
	s.Stop()
}
