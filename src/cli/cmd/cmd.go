package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/danieldin95/openmac/src/libom"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

type Client struct {
	Host string
}

func (cl Client) NewRequest(url string) *libom.HttpClient {
	return &libom.HttpClient{
		Url: url,
	}
}

func (cl Client) GetJSON(url string, v interface{}) error {
	client := cl.NewRequest(url)
	r, err := client.Do()
	if err != nil {
		return err
	}
	if r.StatusCode != http.StatusOK {
		return libom.NewErr(r.Status)
	}
	defer r.Body.Close()
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return err
	}
	return nil
}

func (cl Client) PostJSON(url string, v interface{}, out interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	client := cl.NewRequest(url)
	client.Method = "POST"
	client.Payload = bytes.NewReader(data)
	r, err := client.Do()
	if err != nil {
		return err
	}
	if r.StatusCode != http.StatusOK {
		return libom.NewErr(r.Status)
	}
	defer r.Body.Close()
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if out != nil {
		return json.Unmarshal(body, out)
	}
	return nil
}

type Cmd struct {
}

func (c Cmd) NewHttp(context *cli.Context) Client {
	return Client{Host: context.String("url")}
}

func (c Cmd) Url(context *cli.Context, path string) string {
	return context.String("url") + path
}

func (c Cmd) Out(data interface{}, format string) error {
	switch format {
	case "yaml":
		out, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		out, err := libom.Marshal(data, true)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}
	return nil
}
