package walletservice

import (
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/bitcoin-tales/talesd/pkg/httputil"
)

var (
	// MaxNumOfFailingRequests is the number of requests after which the
	// breaker may trip.
	MaxNumOfFailingRequests = 10
	// FailingRatio is the failing requests ratio that trips the breaker.
	FailingRatio = 0.6
)

type service struct {
	apiURL  string
	breaker *gobreaker.CircuitBreaker
}

// NewService returns a wallet service client for the given base URL.
func NewService(apiURL string) Service {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "walletservice",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) > MaxNumOfFailingRequests &&
				ratio >= FailingRatio
		},
	})
	return &service{apiURL: apiURL, breaker: breaker}
}

type httpResponse struct {
	status int
	body   string
}

// doRequest runs the HTTP call through the circuit breaker. Only transport
// errors count as breaker failures, HTTP-level statuses are handed back to
// the caller untouched.
func (s *service) doRequest(
	method, url, body string, headers map[string]string,
) (int, string, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		status, resp, err := httputil.NewHTTPRequest(method, url, body, headers)
		if err != nil {
			return nil, err
		}
		return httpResponse{status, resp}, nil
	})
	if err != nil {
		return 0, "", err
	}
	r := res.(httpResponse)
	return r.status, r.body, nil
}

var jsonHeaders = map[string]string{
	"Content-Type": "application/json",
}

func isOK(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
