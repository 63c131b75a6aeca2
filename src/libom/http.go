package libom

import (
	"crypto/tls"
	"io"
	"net/http"
	"time"
)

type HttpClient struct {
	Url     string
	Method  string
	Payload io.Reader
	Timeout time.Duration
}

func (cl *HttpClient) Do() (*http.Response, error) {
	if cl.Method == "" {
		cl.Method = "GET"
	}
	if cl.Timeout == 0 {
		cl.Timeout = 30 * time.Second
	}
	request, err := http.NewRequest(cl.Method, cl.Url, cl.Payload)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	client := &http.Client{
		Timeout:   cl.Timeout,
		Transport: transport,
	}
	return client.Do(request)
}
