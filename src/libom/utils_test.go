package libom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettyTime(t *testing.T) {
	var s string

	s = PrettyTime(59)
	assert.Equal(t, "0m59s", s, "be the same.")

	s = PrettyTime(60*2 + 8)
	assert.Equal(t, "2m8s", s, "be the same.")

	s = PrettyTime(3600 + 1)
	assert.Equal(t, "1h0m", s, "be the same.")

	s = PrettyTime(86400 + 3600*5 + 59)
	assert.Equal(t, "1d5h", s, "be the same.")
}

func TestGenRandom(t *testing.T) {
	s := GenRandom(13)
	assert.Equal(t, 13, len(s), "be the same.")
}

func TestMarshal(t *testing.T) {
	v := struct {
		Name string `json:"name"`
	}{Name: "om"}
	out, err := Marshal(v, false)
	assert.Nil(t, err, "marshal plain")
	assert.Equal(t, `{"name":"om"}`, string(out), "be the same.")
}
