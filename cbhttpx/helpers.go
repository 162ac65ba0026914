package cbhttpx

import (
	"net"
	"net/url"
	"strconv"
)

// SplitEndpoint returns the host and port of an endpoint such as
// "http://10.0.0.1:8093".  The port is 0 when the endpoint has none.
func SplitEndpoint(endpoint string) (string, int, error) {
	parsedUrl, err := url.Parse(endpoint)
	if err != nil {
		return "", 0, err
	}

	hostname, portStr, err := net.SplitHostPort(parsedUrl.Host)
	if err != nil {
		return parsedUrl.Host, 0, nil
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, err
	}

	return hostname, port, nil
}
