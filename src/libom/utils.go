package libom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math/rand"
	"os"
	"time"
)

func GenRandom(n int) string {
	letters := []byte("0123456789abcdefghijklmnopqrstuvwxyz")
	buffer := make([]byte, n)
	size := len(letters)
	rand.Seed(time.Now().UnixNano())
	for i := range buffer {
		buffer[i] = letters[rand.Int63()%int64(size)]
	}
	return string(buffer)
}

func Marshal(v interface{}, pretty bool) ([]byte, error) {
	str, err := json.Marshal(v)
	if err != nil {
		Error("Marshal error: %s", err)
		return nil, err
	}
	if !pretty {
		return str, nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, str, "", "  "); err != nil {
		return str, nil
	}
	return out.Bytes(), nil
}

func UnmarshalLoad(v interface{}, file string) error {
	if err := FileExist(file); err != nil {
		return NewErr("UnmarshalLoad: file:%s does not exist", file)
	}
	contents, err := ioutil.ReadFile(file)
	if err != nil {
		return NewErr("UnmarshalLoad: file:%s %s", file, err)
	}
	if err := json.Unmarshal(contents, v); err != nil {
		return NewErr("UnmarshalLoad: %s", err)
	}
	return nil
}

func FileExist(file string) error {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return err
	}
	return nil
}

func PrettyTime(t int64) string {
	min := t / 60
	if min < 60 {
		return fmt.Sprintf("%dm%ds", min, t%60)
	}
	hours := min / 60
	if hours < 24 {
		return fmt.Sprintf("%dh%dm", hours, min%60)
	}
	days := hours / 24
	return fmt.Sprintf("%dd%dh", days, hours%24)
}
