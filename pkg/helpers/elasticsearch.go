package helpers

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// ESConfig holds what NewESClient needs. MaxRetries defaults to 2.
type ESConfig struct {
	Addrs      []string
	Username   string
	Password   string
	MaxRetries int
}

// NewESClient builds an Elasticsearch client for the material index.
// It returns nil, nil when no address is configured so callers can fall
// back to in-process search.
func NewESClient(c ESConfig) (*elasticsearch.Client, error) {
	if len(c.Addrs) == 0 {
		return nil, nil
	}
	retries := c.MaxRetries
	if retries <= 0 {
		retries = 2
	}
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     c.Addrs,
		Username:      c.Username,
		Password:      c.Password,
		MaxRetries:    retries,
		RetryOnStatus: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   4,
			ResponseHeaderTimeout: 3 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 3 * time.Second}).DialContext,
		},
	})
}
