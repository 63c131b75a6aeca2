package cmd

import (
	"strings"

	"github.com/danieldin95/openmac/src/mac/api"
	"github.com/urfave/cli/v2"
	"golang.org/x/net/websocket"
)

type Link struct {
	Cmd
}

func (l Link) Status(c *cli.Context) error {
	url := l.Url(c, "/api/status")
	client := l.NewHttp(c)
	var status api.StatusSchema
	if err := client.GetJSON(url, &status); err != nil {
		return err
	}
	return l.Out(status, c.String("format"))
}

func (l Link) Config(c *cli.Context) error {
	url := l.Url(c, "/api/config")
	client := l.NewHttp(c)
	var value map[string]interface{}
	if err := client.GetJSON(url, &value); err != nil {
		return err
	}
	return l.Out(value, c.String("format"))
}

func (l Link) Command(c *cli.Context) error {
	url := l.Url(c, "/api/command")
	client := l.NewHttp(c)
	request := api.CommandSchema{
		Cmd: c.Int("cmd"),
		Val: c.Int("val"),
	}
	var reply map[string]interface{}
	if err := client.PostJSON(url, request, &reply); err != nil {
		return err
	}
	return l.Out(reply, c.String("format"))
}

// Watch follows the station's control channel, printing each status
// push until the connection drops or the user interrupts.
func (l Link) Watch(c *cli.Context) error {
	url := l.Url(c, "/api/ctrl")
	if strings.HasPrefix(url, "http") {
		url = "ws" + strings.TrimPrefix(url, "http")
	}
	conn, err := websocket.Dial(url, "", c.String("url"))
	if err != nil {
		return err
	}
	defer conn.Close()
	for {
		var status api.StatusSchema
		if err := websocket.JSON.Receive(conn, &status); err != nil {
			return err
		}
		if err := l.Out(status, c.String("format")); err != nil {
			return err
		}
	}
}

func (l Link) Commands(app *cli.App) {
	app.Commands = append(app.Commands, &cli.Command{
		Name:    "status",
		Aliases: []string{"s"},
		Usage:   "show station status",
		Action:  l.Status,
	})
	app.Commands = append(app.Commands, &cli.Command{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "show station configuration",
		Action:  l.Config,
	})
	app.Commands = append(app.Commands, &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "follow station status pushes",
		Action:  l.Watch,
	})
	app.Commands = append(app.Commands, &cli.Command{
		Name:    "command",
		Aliases: []string{"m"},
		Usage:   "pass a command to the link layer",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "cmd", Usage: "command number"},
			&cli.IntFlag{Name: "val", Usage: "command value"},
		},
		Action: l.Command,
	})
}
