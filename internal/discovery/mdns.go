// Package discovery announces the map server on the local network over
// multicast DNS so browsers on the LAN can reach it by name.
package discovery

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strings"

	"github.com/miekg/dns"
	"github.com/pion/mdns/v2"
	"golang.org/x/net/ipv4"
)

var ErrInvalidName = errors.New("mdns name must be a valid .local host name")

// Announcer answers mDNS queries for a single host name.
type Announcer struct {
	conn   *mdns.Conn
	name   string
	logger *log.Logger
}

// ValidateName normalizes name and checks that it is a single-host .local
// name. A bare host such as "mapselect" becomes "mapselect.local".
func ValidateName(name string) (string, error) {
	name = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".")
	if name == "" {
		return "", ErrInvalidName
	}
	if !strings.HasSuffix(name, ".local") {
		name += ".local"
	}
	labels, ok := dns.IsDomainName(name)
	if !ok || labels != 2 {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return name, nil
}

// Announce starts answering for name on the IPv4 mDNS group.
func Announce(name string, logger *log.Logger) (*Announcer, error) {
	if logger == nil {
		logger = log.Default()
	}
	name, err := ValidateName(name)
	if err != nil {
		return nil, err
	}

	addr, err := net.ResolveUDPAddr("udp4", mdns.DefaultAddressIPv4)
	if err != nil {
		return nil, fmt.Errorf("resolve mdns group: %w", err)
	}
	l, err := net.ListenUDP("udp4", addr)
	if err != nil {
		return nil, fmt.Errorf("listen mdns: %w", err)
	}

	conn, err := mdns.Server(ipv4.NewPacketConn(l), nil, &mdns.Config{
		LocalNames: []string{name},
	})
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("start mdns: %w", err)
	}

	logger.Printf("mdns announcing %s", name)
	return &Announcer{conn: conn, name: name, logger: logger}, nil
}

func (a *Announcer) Name() string {
	return a.name
}

func (a *Announcer) Close() error {
	if err := a.conn.Close(); err != nil {
		return fmt.Errorf("close mdns: %w", err)
	}
	a.logger.Printf("mdns stopped for %s", a.name)
	return nil
}
