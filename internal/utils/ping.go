package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// PingService checks that something accepts TCP connections at serviceURL
func PingService(serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	host := parsedURL.Hostname()
	port := parsedURL.Port()

	// Default ports if not specified
	if port == "" {
		switch parsedURL.Scheme {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}

	address := net.JoinHostPort(host, port)

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// PingLocalServer checks that the console is listening on port
func PingLocalServer(port string) error {
	return PingService("http://127.0.0.1:"+port, 1500*time.Millisecond)
}
