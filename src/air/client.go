package air

import (
	"encoding/json"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danieldin95/openmac/src/libom"
	"github.com/danieldin95/openmac/src/mac"
	kcp "github.com/xtaci/kcp-go/v5"
)

// Client attaches a station to a remote channel daemon and implements
// mac.Radio on top of the connection: transmissions go up the socket,
// received frames queue locally, and carrier state follows the
// server's busy notifications.
type Client struct {
	address  string
	protocol string
	alias    string
	conn     net.Conn
	lock     sync.Mutex
	messager libom.Messager
	inbound  *libom.Queue
	busy     int32
	epoch    time.Time
	cons     mac.Constants
	consOk   chan bool
	out      *libom.SubLogger
}

func NewClient(address, protocol, alias string) *Client {
	return &Client{
		address:  address,
		protocol: protocol,
		alias:    alias,
		inbound:  libom.NewQueue(),
		epoch:    time.Now(),
		cons:     mac.DefaultConstants(),
		consOk:   make(chan bool),
		out:      libom.NewSubLogger("airClient"),
	}
}

// Connect dials the daemon, retrying with backoff, announces the
// station and waits for the medium constants before returning.
func (c *Client) Connect() error {
	promise := libom.Promise{
		MaxTry: 10,
		First:  time.Second,
		MinInt: time.Second,
		MaxInt: 10 * time.Second,
	}
	promise.Done(func() error {
		var err error
		var conn net.Conn
		switch c.protocol {
		case "kcp":
			conn, err = kcp.Dial(c.address)
		default:
			conn, err = net.Dial("tcp", c.address)
		}
		if err != nil {
			c.out.Warn("Client.Connect: %s", err)
			return err
		}
		c.conn = conn
		return nil
	})
	if c.conn == nil {
		return libom.NewErr("Client.Connect: %s unreachable", c.address)
	}
	c.out.Info("Client.Connect: %s://%s", c.protocol, c.address)
	if err := c.send(&libom.Envelope{Op: OpHello, Data: []byte(c.alias)}); err != nil {
		return err
	}
	libom.Go(c.Loop)
	select {
	case <-c.consOk:
	case <-time.After(10 * time.Second):
		return libom.NewErr("Client.Connect: no hello from %s", c.address)
	}
	return nil
}

func (c *Client) send(e *libom.Envelope) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.conn == nil {
		return libom.NewErr("Client.send: not connected")
	}
	return c.messager.Send(c.conn, e)
}

func (c *Client) Loop() {
	for {
		c.lock.Lock()
		conn := c.conn
		c.lock.Unlock()
		if conn == nil {
			return
		}
		env, err := c.messager.Receive(conn)
		if err != nil {
			c.out.Warn("Client.Loop: %s", err)
			c.inbound.Close()
			return
		}
		switch env.Op {
		case OpHello:
			if err := json.Unmarshal(env.Data, &c.cons); err != nil {
				c.out.Warn("Client.Loop: hello: %s", err)
			}
			select {
			case <-c.consOk:
			default:
				close(c.consOk)
			}
		case OpFrame:
			if err := c.inbound.Put(env.Data); err != nil {
				return
			}
		case OpBusy:
			if len(env.Data) == 1 {
				atomic.StoreInt32(&c.busy, int32(env.Data[0]))
			}
		default:
			c.out.Warn("Client.Loop: unknown op %#02x", env.Op)
		}
	}
}

func (c *Client) Transmit(data []byte) int {
	if err := c.send(&libom.Envelope{Op: OpFrame, Data: data}); err != nil {
		c.out.Error("Client.Transmit: %s", err)
		return 0
	}
	return len(data)
}

func (c *Client) Receive() []byte {
	if value := c.inbound.Take(); value != nil {
		return value.([]byte)
	}
	return nil
}

func (c *Client) InUse() bool {
	return atomic.LoadInt32(&c.busy) != 0
}

func (c *Client) Clock() int64 {
	return time.Since(c.epoch).Milliseconds()
}

func (c *Client) Constants() mac.Constants {
	return c.cons
}

func (c *Client) Close() {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.inbound.Close()
}
