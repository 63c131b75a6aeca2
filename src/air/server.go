package air

import (
	"net"
	"sync"
	"time"

	"github.com/danieldin95/openmac/src/libom"
	kcp "github.com/xtaci/kcp-go/v5"
)

// Channel protocol opcodes, framed by libom.Messager.
const (
	OpHello = 0x01 // station -> alias; server -> constants
	OpFrame = 0x02 // radio frame bytes, either direction
	OpBusy  = 0x03 // server -> carrier state, one byte 0/1
)

const busyPollTime = 10 * time.Millisecond

// Server exposes a hub medium over tcp or kcp so stations in other
// processes can share it.
type Server struct {
	hub      *Hub
	listen   string
	protocol string
	listener net.Listener
	messager libom.Messager
	out      *libom.SubLogger
}

func NewServer(hub *Hub, listen, protocol string) *Server {
	return &Server{
		hub:      hub,
		listen:   listen,
		protocol: protocol,
		out:      libom.NewSubLogger("airServer"),
	}
}

func (s *Server) Listen() (err error) {
	switch s.protocol {
	case "kcp":
		s.listener, err = kcp.Listen(s.listen)
	default:
		s.listener, err = net.Listen("tcp", s.listen)
	}
	if err != nil {
		s.listener = nil
		return err
	}
	s.out.Info("Server.Listen: %s://%s", s.protocol, s.listen)
	return nil
}

func (s *Server) Start() {
	libom.Go(s.Accept)
}

func (s *Server) Accept() {
	promise := libom.Promise{
		First:  2 * time.Second,
		MinInt: 5 * time.Second,
		MaxInt: 30 * time.Second,
	}
	promise.Done(func() error {
		if err := s.Listen(); err != nil {
			s.out.Warn("Server.Accept: %s", err)
			return err
		}
		return nil
	})
	defer s.Close()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.out.Error("Server.Accept: %s", err)
			return
		}
		libom.Go(func() { s.handle(conn) })
	}
}

// handle joins one connection to the medium: inbound frames go on the
// air, on-air frames and carrier transitions go back down the socket.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	port := s.hub.Join()
	defer port.Close()
	done := make(chan bool)
	defer close(done)
	// Frame fan-out and busy transitions write from separate routines;
	// serialize them so envelopes never interleave on the wire.
	var sendLock sync.Mutex
	send := func(e *libom.Envelope) error {
		sendLock.Lock()
		defer sendLock.Unlock()
		return s.messager.Send(conn, e)
	}
	hello, err := libom.Marshal(port.Constants(), false)
	if err == nil {
		err = send(&libom.Envelope{Op: OpHello, Data: hello})
	}
	if err != nil {
		s.out.Error("Server.handle: %s %s", conn.RemoteAddr(), err)
		return
	}
	libom.Go(func() {
		for {
			frame := port.Receive()
			if frame == nil {
				return
			}
			if err := send(&libom.Envelope{Op: OpFrame, Data: frame}); err != nil {
				s.out.Debug("Server.handle: %s", err)
				return
			}
		}
	})
	libom.Go(func() {
		ticker := time.NewTicker(busyPollTime)
		defer ticker.Stop()
		last := byte(0)
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				busy := byte(0)
				if port.InUse() {
					busy = 1
				}
				if busy == last {
					continue
				}
				last = busy
				if err := send(&libom.Envelope{Op: OpBusy, Data: []byte{busy}}); err != nil {
					return
				}
			}
		}
	})
	for {
		env, err := s.messager.Receive(conn)
		if err != nil {
			s.out.Info("Server.handle: %s leaving: %s", conn.RemoteAddr(), err)
			return
		}
		switch env.Op {
		case OpHello:
			s.out.Info("Server.handle: %s joined: %s", conn.RemoteAddr(), env.Data)
		case OpFrame:
			port.Transmit(env.Data)
		default:
			s.out.Warn("Server.handle: %s unknown op %#02x", conn.RemoteAddr(), env.Op)
		}
	}
}

func (s *Server) Close() {
	if s.listener != nil {
		_ = s.listener.Close()
		s.out.Info("Server.Close: %s", s.listen)
		s.listener = nil
	}
}
