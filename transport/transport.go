// Package transport builds the HTTP plumbing shared by every connect client
// in the topology: cleartext HTTP/2 clients, base URLs derived from
// host:port addresses, protocol selection, and a reachability dial.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// ErrUnknownProtocol is returned for a Config.Protocol outside the known set.
var ErrUnknownProtocol = errors.New("unknown protocol")

// NewHTTPClient returns a client that speaks HTTP/2 with prior knowledge over
// cleartext TCP. Its transport pools connections, so one client can be shared
// by every call to a node.
func NewHTTPClient() *http.Client {
	var protocols http.Protocols
	protocols.SetUnencryptedHTTP2(true)

	return &http.Client{
		Transport: &http.Transport{
			Protocols:         &protocols,
			ForceAttemptHTTP2: true,
		},
	}
}

// BaseURL turns a host:port address into an http base URL. Addresses that
// already carry a scheme are returned unchanged, minus any trailing slash.
func BaseURL(address string) string {
	if strings.HasPrefix(address, "http://") || strings.HasPrefix(address, "https://") {
		return strings.TrimSuffix(address, "/")
	}
	return "http://" + address
}

// HostPort strips a scheme from address, leaving host:port.
func HostPort(address string) string {
	address = strings.TrimPrefix(address, "http://")
	address = strings.TrimPrefix(address, "https://")
	return strings.TrimSuffix(address, "/")
}

// Dial checks that address accepts TCP connections and closes the test
// connection. connect clients connect lazily; Dial gives callers an eager
// failure when the peer is down.
func Dial(ctx context.Context, address string, cfg *Config) error {
	dialer := net.Dialer{Timeout: cfg.DialTimeout.Std()}

	conn, err := dialer.DialContext(ctx, "tcp", HostPort(address))
	if err != nil {
		return fmt.Errorf("dial %s: %w", address, err)
	}
	return conn.Close()
}

// ClientOptions returns the connect options selecting cfg's protocol.
func ClientOptions(cfg *Config) ([]connect.ClientOption, error) {
	var opts []connect.ClientOption

	switch cfg.Protocol {
	case "", ProtocolConnect:
	case ProtocolGRPC:
		opts = append(opts, connect.WithGRPC())
	case ProtocolGRPCWeb:
		opts = append(opts, connect.WithGRPCWeb())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProtocol, cfg.Protocol)
	}

	return opts, nil
}
