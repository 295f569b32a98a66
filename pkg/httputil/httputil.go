package httputil

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"
)

var client = &http.Client{Timeout: 15 * time.Second}

// NewHTTPRequest makes an HTTP call and returns the status code and the raw
// body of the response. A non-2xx status is not treated as an error here,
// callers are expected to branch on the returned code.
func NewHTTPRequest(
	method, url, bodyString string, headers map[string]string,
) (int, string, error) {
	switch method {
	case "GET":
		return doRequest("GET", url, "", headers)
	case "POST":
		return doRequest("POST", url, bodyString, headers)
	case "DELETE":
		return doRequest("DELETE", url, "", headers)
	default:
		return 0, "", fmt.Errorf("verb not supported %s", method)
	}
}

func doRequest(
	method, url, bodyString string, headers map[string]string,
) (int, string, error) {
	var req *http.Request
	var err error
	if len(bodyString) > 0 {
		req, err = http.NewRequest(method, url, strings.NewReader(bodyString))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return 0, "", err
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rs, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer rs.Body.Close()

	bodyBytes, err := ioutil.ReadAll(rs.Body)
	if err != nil {
		return 0, "", err
	}

	return rs.StatusCode, string(bodyBytes), nil
}
