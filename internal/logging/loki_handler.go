// Package logging provides a slog.Handler that ships log records to a
// Grafana Loki instance over HTTP. Records are batched and flushed either
// when the batch fills up or on a periodic timer, so logging never blocks
// request handling on the network.
package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const flushInterval = 5 * time.Second

// LokiHandler batches slog records and pushes them to Loki.
type LokiHandler struct {
	url       string
	labels    map[string]string
	client    *http.Client
	batchSize int
	enabled   bool
	level     slog.Level
	attrs     []slog.Attr

	// shared between handler clones created by WithAttrs
	// partagé entre les clones du handler créés par WithAttrs
	state *batchState
}

type batchState struct {
	mu     sync.Mutex
	batch  []lokiEntry
	ticker *time.Ticker
	done   chan struct{}
}

type lokiEntry struct {
	timestamp time.Time
	line      string
}

type lokiPushRequest struct {
	Streams []lokiStream `json:"streams"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// NewLokiHandler creates a handler pushing to url (e.g. "http://localhost:3100").
// labels are attached to every stream. batchSize 0 means send each record immediately.
func NewLokiHandler(url string, labels map[string]string, batchSize int, enabled bool, level slog.Level) *LokiHandler {
	if labels == nil {
		labels = make(map[string]string)
	}

	h := &LokiHandler{
		url:       url + "/loki/api/v1/push",
		labels:    labels,
		client:    &http.Client{Timeout: 5 * time.Second},
		batchSize: batchSize,
		enabled:   enabled,
		level:     level,
		state: &batchState{
			batch: make([]lokiEntry, 0, batchSize),
			done:  make(chan struct{}),
		},
	}

	if batchSize > 0 && enabled {
		h.state.ticker = time.NewTicker(flushInterval)
		go h.flushLoop()
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *LokiHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled && level >= h.level
}

// Handle converts the record to a JSON line and queues it for push.
func (h *LokiHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.enabled {
		return nil
	}

	logData := map[string]any{
		"time":  r.Time.Format(time.RFC3339Nano),
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, a := range h.attrs {
		logData[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		logData[a.Key] = a.Value.Any()
		return true
	})

	logJSON, err := json.Marshal(logData)
	if err != nil {
		return fmt.Errorf("failed to marshal log to JSON: %w", err)
	}

	h.state.mu.Lock()
	h.state.batch = append(h.state.batch, lokiEntry{timestamp: r.Time, line: string(logJSON)})
	shouldFlush := h.batchSize == 0 || len(h.state.batch) >= h.batchSize
	h.state.mu.Unlock()

	if shouldFlush {
		return h.flush()
	}
	return nil
}

// WithAttrs returns a handler that includes attrs in every record.
func (h *LokiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup returns the handler unchanged; groups are flattened.
func (h *LokiHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *LokiHandler) flushLoop() {
	for {
		select {
		case <-h.state.ticker.C:
			_ = h.flush()
		case <-h.state.done:
			return
		}
	}
}

// flush sends all batched logs to Loki
func (h *LokiHandler) flush() error {
	h.state.mu.Lock()
	if len(h.state.batch) == 0 {
		h.state.mu.Unlock()
		return nil
	}
	entries := h.state.batch
	h.state.batch = make([]lokiEntry, 0, h.batchSize)
	h.state.mu.Unlock()

	// Loki expects [timestamp_in_nanoseconds, log_line]
	values := make([][]string, len(entries))
	for i, entry := range entries {
		values[i] = []string{
			strconv.FormatInt(entry.timestamp.UnixNano(), 10),
			entry.line,
		}
	}

	return h.push(lokiPushRequest{
		Streams: []lokiStream{{Stream: h.labels, Values: values}},
	})
}

// push sends the batch over HTTP. Transport errors are swallowed: the
// application must keep running when Loki is down.
func (h *LokiHandler) push(req lokiPushRequest) error {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal push request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, h.url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	return nil
}

// Close flushes any remaining logs and stops the periodic flush
func (h *LokiHandler) Close() error {
	if h.state.ticker != nil {
		h.state.ticker.Stop()
		select {
		case <-h.state.done:
		default:
			close(h.state.done)
		}
	}
	return h.flush()
}
