package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-wtime/internal/config"
)

// Content is one rendering of a snapshot in every served representation.
type Content struct {
	Timestamp []byte // fixed-width timestamp line
	ICS       []byte // iCalendar feed
	Report    []byte // labelled text report
}

// payload is a single representation with its HTTP caching metadata.
type payload struct {
	data        []byte
	contentType string
	etag        string
}

// cacheItem stores every route's payload plus the shared Last-Modified value.
type cacheItem struct {
	routes       map[string]payload
	lastModified string // RFC1123 format required by HTTP headers
}

// TimeServer serves the most recent snapshot over HTTP.
type TimeServer struct {
	// cache uses atomic.Pointer for lock-free reads: the handler only ever
	// sees a complete cacheItem, old or new.
	cache atomic.Pointer[cacheItem]
	Port  string
}

// NewTimeServer creates a new instance of the server.
func NewTimeServer(port string) *TimeServer {
	return &TimeServer{
		Port: port,
	}
}

// Handler returns the HTTP handler serving every route.
func (s *TimeServer) Handler() http.Handler {
	return http.HandlerFunc(s.handleRequest)
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *TimeServer) Start(ctx context.Context) error {
	if err := config.ValidatePort(s.Port); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

func newPayload(data []byte, contentType string) payload {
	hash := sha256.Sum256(data)
	return payload{
		data:        data,
		contentType: contentType,
		etag:        fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
	}
}

// Update atomically replaces the served content.
func (s *TimeServer) Update(c Content) {
	item := &cacheItem{
		routes: map[string]payload{
			config.RouteTimestamp: newPayload(c.Timestamp, config.MimeTextPlain),
			config.RouteICS:       newPayload(c.ICS, config.MimeTextCalendar),
			config.RouteInfo:      newPayload(c.Report, config.MimeTextPlain),
		},
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}

	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(c.Timestamp)+len(c.ICS)+len(c.Report),
		config.LogKeyETag, item.routes[config.RouteTimestamp].etag,
	)
}

// handleRequest serves the payload for the request path with HTTP caching
// support.
func (s *TimeServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	// 1. Method Validation
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	// 2. Route Validation
	switch r.URL.Path {
	case config.RouteTimestamp, config.RouteICS, config.RouteInfo:
	default:
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
		return
	}

	// 3. Readiness Check
	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}
	p := item.routes[r.URL.Path]

	// 4. Set Response Headers
	w.Header().Set(config.HeaderContentType, p.contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderServer, config.UserAgent)
	w.Header().Set(config.HeaderETag, p.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	// 5. Check Conditional Headers
	// If-Modified-Since only applies without If-None-Match (RFC 7232 §3.3);
	// Last-Modified has one-second resolution and content may change faster.
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		if match == p.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	} else if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	// 6. Serve Content
	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(p.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyRoute, r.URL.Path,
				config.LogKeyError, err,
			)
		}
	}
}
