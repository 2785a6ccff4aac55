package feed

import (
	"net"
	"net/http"
	"time"
)

// NewTimeoutClient creates an http client giving up on connections which
// take longer than connectTimeout to establish, and on requests which take
// longer than readWriteTimeout to complete.
func NewTimeoutClient(connectTimeout time.Duration, readWriteTimeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: readWriteTimeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: connectTimeout}).DialContext,
			TLSHandshakeTimeout:   connectTimeout,
			ResponseHeaderTimeout: readWriteTimeout,
			MaxIdleConnsPerHost:   4,
		},
	}
}
