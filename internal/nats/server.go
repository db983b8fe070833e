// Package nats runs the embedded JetStream server that backs the "nats"
// profile store. Nothing listens on the network; clients connect in-process.
package nats

import (
	"errors"
	"time"

	"github.com/icyhq/icy/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	readyTimeout    = 4 * time.Second
	drainTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// StartEmbeddedNATS starts an embedded NATS server with JetStream enabled,
// persisting to dataDir.
func StartEmbeddedNATS(dataDir string) (*server.Server, error) {
	logger.Debug("nats: starting embedded server in %s", dataDir)

	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   dataDir,
		DontListen: true,
		NoSigs:     true,
	})
	if err != nil {
		logger.Error("nats: create server: %v", err)
		return nil, err
	}

	go ns.Start()

	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		logger.Error("nats: server not ready after %s", readyTimeout)
		return nil, errors.New("nats server failed to start within timeout")
	}
	return ns, nil
}

// ConnectInProcess opens a connection that talks to ns without sockets.
func ConnectInProcess(ns *server.Server) (*nats.Conn, error) {
	conn, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		logger.Error("nats: in-process connect: %v", err)
		return nil, err
	}
	return conn, nil
}

// CreateJetStream creates a JetStream context from a NATS connection.
func CreateJetStream(nc *nats.Conn) (jetstream.JetStream, error) {
	return jetstream.New(nc)
}

// Shutdown drains nc and stops ns. Either may be nil. Both steps are bounded
// so a wedged server cannot hang the CLI on exit.
func Shutdown(nc *nats.Conn, ns *server.Server) error {
	if nc != nil {
		drained := make(chan error, 1)
		go func() { drained <- nc.Drain() }()

		select {
		case err := <-drained:
			if err != nil {
				logger.Warn("nats: drain failed, closing: %v", err)
				nc.Close()
			}
		case <-time.After(drainTimeout):
			logger.Warn("nats: drain timed out after %s, closing", drainTimeout)
			nc.Close()
		}
	}

	if ns == nil {
		return nil
	}

	ns.Shutdown()
	done := make(chan struct{})
	go func() {
		ns.WaitForShutdown()
		close(done)
	}()

	select {
	case <-done:
		logger.Debug("nats: server stopped")
		return nil
	case <-time.After(shutdownTimeout):
		logger.Error("nats: shutdown timed out after %s", shutdownTimeout)
		return errors.New("NATS server shutdown timed out")
	}
}
