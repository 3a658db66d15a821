package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-wtime/internal/config"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleContent(tag string) Content {
	return Content{
		Timestamp: []byte("2024-10-14-19-11-09-123-456789" + tag + "\n"),
		ICS:       []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\n" + tag + "END:VCALENDAR\r\n"),
		Report:    []byte("Timestamp:  2024-10-14-19-11-09-123-456789" + tag + "\n"),
	}
}

// -----------------------------------------------------------------------------
// Unit Tests (White-Box Testing of Handler Logic)
// -----------------------------------------------------------------------------

// TestHandler_ServingContent verifies headers and body for every route.
func TestHandler_ServingContent(t *testing.T) {
	srv := NewTimeServer("0") // Port irrelevant for handler test
	content := sampleContent("")
	srv.Update(content)

	tests := []struct {
		route    string
		wantMime string
		wantBody []byte
	}{
		{config.RouteTimestamp, config.MimeTextPlain, content.Timestamp},
		{config.RouteICS, config.MimeTextCalendar, content.ICS},
		{config.RouteInfo, config.MimeTextPlain, content.Report},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.route, nil)
			w := httptest.NewRecorder()
			srv.handleRequest(w, req)

			resp := w.Result()
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.wantMime, resp.Header.Get(config.HeaderContentType))
			assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
			assert.Equal(t, config.UserAgent, resp.Header.Get(config.HeaderServer))
			assert.Contains(t, resp.Header.Get(config.HeaderCacheControl), "no-cache")
			assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))
			assert.NotEmpty(t, resp.Header.Get(config.HeaderLastModified))

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

// TestHandler_Head returns headers without a body.
func TestHandler_Head(t *testing.T) {
	srv := NewTimeServer("0")
	srv.Update(sampleContent(""))

	req := httptest.NewRequest(http.MethodHead, config.RouteICS, nil)
	w := httptest.NewRecorder()
	srv.handleRequest(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, config.MimeTextCalendar, w.Header().Get(config.HeaderContentType))
	assert.Empty(t, w.Body.Bytes())
}

// TestHandler_Caching verifies that the server respects ETag headers (If-None-Match)
// and returns 304 Not Modified, and that a new snapshot changes the ETag.
func TestHandler_Caching(t *testing.T) {
	srv := NewTimeServer("0")
	srv.Update(sampleContent("-a"))

	req1 := httptest.NewRequest(http.MethodGet, config.RouteTimestamp, nil)
	w1 := httptest.NewRecorder()
	srv.handleRequest(w1, req1)

	etag := w1.Result().Header.Get(config.HeaderETag)
	require.NotEmpty(t, etag, "Server must provide an ETag")

	req2 := httptest.NewRequest(http.MethodGet, config.RouteTimestamp, nil)
	req2.Header.Set(config.HeaderIfNoneMatch, etag)
	w2 := httptest.NewRecorder()
	srv.handleRequest(w2, req2)

	resp2 := w2.Result()
	defer func() { _ = resp2.Body.Close() }()

	assert.Equal(t, http.StatusNotModified, resp2.StatusCode)
	body, _ := io.ReadAll(resp2.Body)
	assert.Empty(t, body, "Body must be empty on 304 Not Modified")

	srv.Update(sampleContent("-b"))

	req3 := httptest.NewRequest(http.MethodGet, config.RouteTimestamp, nil)
	req3.Header.Set(config.HeaderIfNoneMatch, etag)
	w3 := httptest.NewRecorder()
	srv.handleRequest(w3, req3)

	assert.Equal(t, http.StatusOK, w3.Code)
	assert.NotEqual(t, etag, w3.Header().Get(config.HeaderETag))
}

// TestHandler_IfModifiedSince returns 304 when the client copy is current.
func TestHandler_IfModifiedSince(t *testing.T) {
	srv := NewTimeServer("0")
	srv.Update(sampleContent(""))

	req := httptest.NewRequest(http.MethodGet, config.RouteInfo, nil)
	req.Header.Set(config.HeaderIfModifiedSince, time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
	w := httptest.NewRecorder()
	srv.handleRequest(w, req)

	assert.Equal(t, http.StatusNotModified, w.Code)
}

// TestHandler_StaleETagIgnoresIfModifiedSince covers two updates within the
// same second: the client's ETag is stale even though its Last-Modified
// value still looks current.
func TestHandler_StaleETagIgnoresIfModifiedSince(t *testing.T) {
	srv := NewTimeServer("0")
	srv.Update(sampleContent("-a"))

	w1 := httptest.NewRecorder()
	srv.handleRequest(w1, httptest.NewRequest(http.MethodGet, config.RouteTimestamp, nil))
	oldETag := w1.Header().Get(config.HeaderETag)
	lastModified := w1.Header().Get(config.HeaderLastModified)
	require.NotEmpty(t, oldETag)
	require.NotEmpty(t, lastModified)

	srv.Update(sampleContent("-b"))

	req := httptest.NewRequest(http.MethodGet, config.RouteTimestamp, nil)
	req.Header.Set(config.HeaderIfNoneMatch, oldETag)
	req.Header.Set(config.HeaderIfModifiedSince, time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
	w2 := httptest.NewRecorder()
	srv.handleRequest(w2, req)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.NotEqual(t, oldETag, w2.Header().Get(config.HeaderETag))
	assert.Equal(t, string(sampleContent("-b").Timestamp), w2.Body.String())
}

// TestHandler_MethodNotAllowed ensures strictly GET and HEAD are accepted.
func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := NewTimeServer("0")

	req := httptest.NewRequest(http.MethodPost, config.RouteTimestamp, nil)
	w := httptest.NewRecorder()
	srv.handleRequest(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, config.AllowedMethods, resp.Header.Get(config.HeaderAllow))
}

func TestHandler_NotFound(t *testing.T) {
	srv := NewTimeServer("0")
	srv.Update(sampleContent(""))

	req := httptest.NewRequest(http.MethodGet, "/favicon.ico", nil)
	w := httptest.NewRecorder()
	srv.handleRequest(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestHandler_Initializing verifies the 503 behavior when no snapshot was published yet.
func TestHandler_Initializing(t *testing.T) {
	srv := NewTimeServer("0")

	req := httptest.NewRequest(http.MethodGet, config.RouteTimestamp, nil)
	w := httptest.NewRecorder()
	srv.handleRequest(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))
}

// -----------------------------------------------------------------------------
// Concurrency Tests (Race Detection)
// -----------------------------------------------------------------------------

// TestServer_RaceCondition runs writers and readers concurrently against the
// atomic cache. Run this with `go test -race`.
func TestServer_RaceCondition(t *testing.T) {
	srv := NewTimeServer("0")
	var wg sync.WaitGroup

	end := time.Now().Add(300 * time.Millisecond)

	for w := 0; w < 5; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			i := 0
			for time.Now().Before(end) {
				srv.Update(sampleContent(fmt.Sprintf("-%d-%d", id, i)))
				i++
				time.Sleep(1 * time.Microsecond)
			}
		}(w)
	}

	for r := 0; r < 20; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req := httptest.NewRequest(http.MethodGet, config.RouteICS, nil)
				w := httptest.NewRecorder()

				srv.handleRequest(w, req)

				code := w.Code
				if code != http.StatusOK && code != http.StatusServiceUnavailable {
					t.Errorf("Unexpected status code during race test: %d", code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Integration Tests (Real TCP Lifecycle)
// -----------------------------------------------------------------------------

// TestServer_Lifecycle spins up the actual TCP listener to verify network binding
// and graceful shutdown logic.
func TestServer_Lifecycle(t *testing.T) {
	const port = "18099"

	srv := NewTimeServer(port)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := "http://127.0.0.1:" + port + config.RouteTimestamp
	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}

	require.Eventually(t, func() bool {
		resp, err := client.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	// 1. Check Initial State (503)
	resp, err := client.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	// 2. Update Data
	srv.Update(sampleContent(""))

	// 3. Check Served Content (200)
	resp, err = client.Get(url)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextPlain, resp.Header.Get(config.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	_ = resp.Body.Close()
	assert.Contains(t, string(body), "2024-10-14-19-11-09-123-456789")

	// 4. Test Shutdown
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}

func TestServer_StartRejectsBadPort(t *testing.T) {
	err := NewTimeServer("not-a-port").Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPortNumber)
}
