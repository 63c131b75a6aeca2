package station

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/danieldin95/openmac/src/libom"
	"github.com/danieldin95/openmac/src/mac"
)

// Terminal is the interactive console on a running station.
type Terminal struct {
	Station *Station
	Console *readline.Instance
}

func NewTerminal(station *Station) *Terminal {
	t := &Terminal{Station: station}
	completer := readline.NewPrefixCompleter(
		readline.PcItem("quit"),
		readline.PcItem("help"),
		readline.PcItem("send"),
		readline.PcItem("recv"),
		readline.PcItem("status"),
		readline.PcItem("command"),
		readline.PcItem("show",
			readline.PcItem("config"),
			readline.PcItem("record"),
			readline.PcItem("clock"),
		),
	)
	config := &readline.Config{
		Prompt:            t.Prompt(),
		HistoryFile:       ".history",
		InterruptPrompt:   "^C",
		EOFPrompt:         "quit",
		HistorySearchFold: true,
		AutoComplete:      completer,
	}
	if l, err := readline.NewEx(config); err == nil {
		t.Console = l
	}
	return t
}

func (t *Terminal) Prompt() string {
	return fmt.Sprintf("[%04x@%s]# ", t.Station.Mac(), t.Station.Alias())
}

func (t *Terminal) CmdSend(args string) {
	words := strings.SplitN(args, " ", 2)
	if len(words) < 2 {
		fmt.Printf("usage: send <dest> <text>\n")
		return
	}
	dest, err := strconv.ParseUint(words[0], 0, 16)
	if err != nil {
		fmt.Printf("send: bad dest: %s\n", err)
		return
	}
	data := []byte(words[1])
	n := t.Station.Link().Send(uint16(dest), data, len(data))
	fmt.Printf("sent %d bytes, status %s\n", n, mac.StatusName(t.Station.Status()))
}

func (t *Terminal) CmdRecv() {
	trans := &mac.Transmission{}
	n := t.Station.Link().Recv(trans)
	if n < 0 {
		fmt.Printf("recv: link closed\n")
		return
	}
	fmt.Printf("%d bytes from %04x: %s\n", n, trans.SrcAddr, trans.Buf)
}

func (t *Terminal) CmdStatus() {
	code := t.Station.Status()
	fmt.Printf("%-10s: %d (%s)\n", "status", code, mac.StatusName(code))
}

func (t *Terminal) CmdCommand(args string) {
	words := strings.Fields(args)
	if len(words) < 1 {
		fmt.Printf("usage: command <cmd> [val]\n")
		return
	}
	cmd, err := strconv.Atoi(words[0])
	if err != nil {
		fmt.Printf("command: %s\n", err)
		return
	}
	val := 0
	if len(words) > 1 {
		if val, err = strconv.Atoi(words[1]); err != nil {
			fmt.Printf("command: %s\n", err)
			return
		}
	}
	t.Station.Command(cmd, val)
	t.CmdStatus()
}

func (t *Terminal) CmdShow(args string) {
	switch args {
	case "config":
		if str, err := libom.Marshal(t.Station.Config(), true); err == nil {
			fmt.Printf("%s\n", str)
		}
	case "record":
		for name, value := range t.Station.Record() {
			fmt.Printf("%-10s: %d\n", name, value)
		}
	case "clock":
		fmt.Printf("%-10s: %d\n", "time", t.Station.Time())
		fmt.Printf("%-10s: %d\n", "offset", t.Station.Offset())
	default:
		fmt.Printf("%-10s: %s\n", "uuid", t.Station.UUID())
		fmt.Printf("%-10s: %04x\n", "mac", t.Station.Mac())
		fmt.Printf("%-10s: %s\n", "uptime", libom.PrettyTime(t.Station.UpTime()))
		t.CmdStatus()
	}
}

func (t *Terminal) Trim(v string) string {
	return strings.TrimSpace(v)
}

func (t *Terminal) Start() {
	if t.Console == nil {
		return
	}
	defer t.Console.Close()
	for {
		line, err := t.Console.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = t.Trim(line)
		switch {
		case line == "quit":
			return
		case line == "help":
			fmt.Printf("commands: send <dest> <text> | recv | status | command <cmd> <val> | show [config|record|clock] | quit\n")
		case line == "recv":
			t.CmdRecv()
		case line == "status":
			t.CmdStatus()
		case strings.HasPrefix(line, "send "):
			t.CmdSend(t.Trim(line[5:]))
		case strings.HasPrefix(line, "command"):
			t.CmdCommand(t.Trim(line[7:]))
		case strings.HasPrefix(line, "show"):
			t.CmdShow(t.Trim(line[4:]))
		case line == "":
		default:
			fmt.Printf("unknown command: %s\n", line)
		}
	}
}
