package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"gopkg.in/yaml.v2"
)

// Response writes v in the encoding the request asked for with
// ?format=; json is the default, yaml the alternative. Every GET on
// this surface negotiates the same way, so the switch lives here.
func Response(w http.ResponseWriter, r *http.Request, v interface{}) {
	if GetQueryOne(r, "format") == "yaml" {
		str, err := yaml.Marshal(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(str)
		return
	}
	str, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(str)
}

// ResponseMsg reports a link status code and its name.
func ResponseMsg(w http.ResponseWriter, r *http.Request, code int, message string) {
	ret := struct {
		Code    int    `json:"code" yaml:"code"`
		Message string `json:"message" yaml:"message"`
	}{
		Code:    code,
		Message: message,
	}
	Response(w, r, ret)
}

func GetData(r *http.Request, v interface{}) error {
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

func GetQueryOne(req *http.Request, name string) string {
	query := req.URL.Query()
	if values, ok := query[name]; ok {
		return values[0]
	}
	return ""
}
