package httpx

import (
	"net"
	"net/http"
	"time"
)

// The kiosk device is a single slow embedded board on the local network:
// keep the pool tiny and the timeouts short so a wedged device surfaces as
// an error instead of a hung request.
var defaultClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        4,
		MaxConnsPerHost:     4,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	},
}

func Client() *http.Client { return defaultClient }
