// pkg/cli/signals.go

package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// CleanupFunc releases something a command acquired.
type CleanupFunc = func() error

// SignalHandler cancels its context on SIGINT or SIGTERM and runs the
// registered cleanups once, in reverse order.
type SignalHandler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	sigChan  chan os.Signal
	doneChan chan struct{}

	mu       sync.Mutex
	cleanups []CleanupFunc
	once     sync.Once
}

// NewSignalHandler starts listening for termination signals.
func NewSignalHandler(parent context.Context) *SignalHandler {
	ctx, cancel := context.WithCancel(parent)
	h := &SignalHandler{
		ctx:      ctx,
		cancel:   cancel,
		sigChan:  make(chan os.Signal, 1),
		doneChan: make(chan struct{}),
	}
	signal.Notify(h.sigChan, os.Interrupt, syscall.SIGTERM)
	go h.handleSignals()
	return h
}

// Context is cancelled when a signal arrives or Stop is called.
func (h *SignalHandler) Context() context.Context {
	return h.ctx
}

// RegisterCleanup adds a cleanup to run on shutdown.
func (h *SignalHandler) RegisterCleanup(fn CleanupFunc) {
	h.mu.Lock()
	h.cleanups = append(h.cleanups, fn)
	h.mu.Unlock()
}

func (h *SignalHandler) handleSignals() {
	select {
	case sig := <-h.sigChan:
		otelzap.Ctx(h.ctx).Info("Received signal, cleaning up", zap.String("signal", sig.String()))
		h.cancel()
		h.runCleanup()
	case <-h.doneChan:
	}
}

// Stop releases the signal subscription and runs pending cleanups.
func (h *SignalHandler) Stop() {
	signal.Stop(h.sigChan)
	close(h.doneChan)
	h.cancel()
	h.runCleanup()
}

func (h *SignalHandler) runCleanup() {
	h.once.Do(func() {
		h.mu.Lock()
		fns := h.cleanups
		h.cleanups = nil
		h.mu.Unlock()
		for i := len(fns) - 1; i >= 0; i-- {
			if err := fns[i](); err != nil {
				otelzap.Ctx(h.ctx).Warn("Cleanup failed", zap.Error(err))
			}
		}
	})
}
