package config

import (
	"os"
	"strings"

	"github.com/danieldin95/openmac/src/libom"
)

type Log struct {
	File    string `json:"file,omitempty"`
	Verbose int    `json:"verbose"`
}

func LoadFile(v interface{}, file string) {
	if file == "" {
		return
	}
	if err := libom.UnmarshalLoad(v, file); err != nil {
		libom.Debug("config.LoadFile: %s", err)
	}
}

func GetAlias() string {
	if hostname, err := os.Hostname(); err == nil {
		return strings.ToLower(hostname)
	}
	return libom.GenRandom(13)
}
