package station

import (
	"time"

	"github.com/danieldin95/openmac/src/air"
	"github.com/danieldin95/openmac/src/cli/config"
	"github.com/danieldin95/openmac/src/libom"
	"github.com/danieldin95/openmac/src/mac"
	machttp "github.com/danieldin95/openmac/src/mac/http"
)

// Station is one node: a radio attachment, the MAC engine on top of
// it, and the status surfaces around them.
type Station struct {
	uuid   string
	config *config.Station
	radio  *air.Client
	link   *mac.LinkLayer
	http   *machttp.Http
	epoch  time.Time
	out    *libom.SubLogger
}

func NewStation(c *config.Station) *Station {
	return &Station{
		config: c,
		epoch:  time.Now(),
		out:    libom.NewSubLogger(c.Id()),
	}
}

func (s *Station) Initialize() error {
	s.radio = air.NewClient(s.config.Channel, s.config.Protocol, s.config.Alias)
	if err := s.radio.Connect(); err != nil {
		s.link = mac.NewLinkLayer(nil, 0)
		return err
	}
	s.link = mac.NewLinkLayer(s.radio, uint16(s.config.Mac))
	if s.link.Status() != mac.StatusSuccess {
		return libom.NewErr("Station.Initialize: %s", mac.StatusName(s.link.Status()))
	}
	s.link.Command(1, s.config.Debug)
	if s.config.MaxSlots {
		s.link.Command(2, 1)
	}
	if s.config.BeaconInterval >= -1 {
		s.link.Command(3, s.config.BeaconInterval)
	}
	if s.config.Http != "" {
		s.http = machttp.NewHttp(s, s.config.Http)
	}
	return nil
}

func (s *Station) Start() {
	s.out.Info("Station.Start: mac %04x on %s", s.config.Mac, s.config.Channel)
	s.link.Start()
	if s.http != nil {
		s.http.Start()
	}
}

func (s *Station) Stop() {
	s.out.Info("Station.Stop")
	if s.http != nil {
		s.http.Shutdown()
	}
	s.link.Stop()
	s.radio.Close()
}

func (s *Station) Link() *mac.LinkLayer {
	return s.link
}

// UUID identifies this process on the status API.
func (s *Station) UUID() string {
	if s.uuid == "" {
		s.uuid = libom.GenRandom(13)
	}
	return s.uuid
}

func (s *Station) Mac() uint16 {
	return uint16(s.config.Mac)
}

func (s *Station) Status() int {
	return s.link.Status()
}

func (s *Station) Record() map[string]int64 {
	return s.link.Record()
}

func (s *Station) Time() int64 {
	if c := s.link.Clock(); c != nil {
		return c.Time()
	}
	return 0
}

func (s *Station) Offset() int64 {
	if c := s.link.Clock(); c != nil {
		return c.Offset()
	}
	return 0
}

func (s *Station) UpTime() int64 {
	return int64(time.Since(s.epoch).Seconds())
}

func (s *Station) Command(cmd, val int) int {
	return s.link.Command(cmd, val)
}

func (s *Station) Config() interface{} {
	return s.config
}

func (s *Station) Alias() string {
	return s.config.Alias
}
