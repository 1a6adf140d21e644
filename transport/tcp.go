package transport

import (
	"context"
	"fmt"
	"net"

	"github.com/brutella/dnssd"

	"github.com/kc2vhf/minirds/rds"
)

// ServiceType is the DNS-SD service type MiniRDS announces its
// control TCP port under, following the teacher's dns_sd.go naming
// convention of "_<protocol>._tcp".
const ServiceType = "_minirds-ctl._tcp"

// TCPTransport serves control commands to any number of concurrently
// connected clients, each on its own line-reading goroutine, grounded
// on the teacher's server.go accept loop.
type TCPTransport struct {
	ln   net.Listener
	name string
}

// ListenTCP opens a TCP listener on addr (e.g. ":8750").
func ListenTCP(addr string) (*TCPTransport, error) {
	var ln, err = net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: listen %s: %w", addr, err)
	}

	return &TCPTransport{ln: ln}, nil
}

// Addr returns the listener's bound address.
func (t *TCPTransport) Addr() net.Addr {
	return t.ln.Addr()
}

// Serve accepts connections until the listener is closed, serving
// each with handle and echoing OK/ERR replies back to the client.
func (t *TCPTransport) Serve(handle Handler) error {
	for {
		var conn, err = t.ln.Accept()
		if err != nil {
			return err
		}

		go func() {
			defer conn.Close()

			if err := ServeLines(conn, conn, handle); err != nil {
				rds.Logger.Debug("control connection closed", "remote", conn.RemoteAddr(), "err", err)
			}
		}()
	}
}

// Close stops accepting new connections.
func (t *TCPTransport) Close() error {
	return t.ln.Close()
}

// Announce advertises this listener over mDNS/DNS-SD as name (or
// "MiniRDS" if empty), the same brutella/dnssd responder
// pattern as the teacher's dns_sd_announce, generalized from a fixed
// service name/port pair to whatever TCPTransport is currently
// listening on.
func (t *TCPTransport) Announce(ctx context.Context, name string) error {
	if name == "" {
		name = "MiniRDS"
	}

	var tcpAddr, ok = t.ln.Addr().(*net.TCPAddr)
	if !ok {
		return fmt.Errorf("transport: announce: listener address is not TCP")
	}

	var cfg = dnssd.Config{ //nolint:exhaustruct
		Name: name,
		Type: ServiceType,
		Port: tcpAddr.Port,
	}

	var svc, err = dnssd.NewService(cfg)
	if err != nil {
		return fmt.Errorf("transport: dnssd service: %w", err)
	}

	var responder, err2 = dnssd.NewResponder()
	if err2 != nil {
		return fmt.Errorf("transport: dnssd responder: %w", err2)
	}

	if _, err := responder.Add(svc); err != nil {
		return fmt.Errorf("transport: dnssd add: %w", err)
	}

	go func() {
		if err := responder.Respond(ctx); err != nil {
			rds.Logger.Error("dns-sd responder stopped", "err", err)
		}
	}()

	return nil
}
