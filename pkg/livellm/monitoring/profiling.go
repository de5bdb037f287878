package monitoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"sync"
	"sync/atomic"
	"time"
)

var (
	profilingServer     *http.Server
	profilingAddr       string
	profilingMu         sync.Mutex
	profilingEnabled    atomic.Bool
	profilingServerDone chan struct{}
)

// EnableProfiling starts an HTTP server exposing Go's standard pprof
// endpoints under /debug/pprof/, for diagnosing a long-running render
// process (a CLI stream session, a hosting service's renderer pool)
// under load. Only bind to localhost; the endpoint exposes runtime
// internals and performs no authentication of its own.
func EnableProfiling(addr string) error {
	profilingMu.Lock()
	defer profilingMu.Unlock()

	if profilingEnabled.Load() {
		return errors.New("monitoring: profiling already enabled")
	}
	if addr == "" {
		return errors.New("monitoring: profiling address cannot be empty")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	profilingServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	profilingAddr = addr
	profilingServerDone = make(chan struct{})

	go func() {
		defer close(profilingServerDone)
		if err := profilingServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			profilingEnabled.Store(false)
		}
	}()

	profilingEnabled.Store(true)
	time.Sleep(50 * time.Millisecond)
	return nil
}

// StopProfiling gracefully shuts down the profiling server started by
// EnableProfiling. A no-op if profiling isn't enabled.
func StopProfiling() {
	profilingMu.Lock()
	defer profilingMu.Unlock()

	if !profilingEnabled.Load() || profilingServer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := profilingServer.Shutdown(ctx); err != nil {
		_ = profilingServer.Close()
	}

	<-profilingServerDone
	profilingServer = nil
	profilingAddr = ""
	profilingEnabled.Store(false)
}

// IsProfilingEnabled reports whether the profiling server is running.
func IsProfilingEnabled() bool {
	return profilingEnabled.Load()
}

// GetProfilingAddress returns the address the profiling server is bound
// to, or "" if profiling isn't enabled.
func GetProfilingAddress() string {
	profilingMu.Lock()
	defer profilingMu.Unlock()
	return profilingAddr
}
