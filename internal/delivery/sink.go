package delivery

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Veraticus/cashiering/internal/model"
)

// Sink receives confirmed delivery requests. Emit must not block the caller
// for long and has no way to report failure back to the workflow.
type Sink interface {
	Emit(ctx context.Context, req model.DeliveryRequest)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ctx context.Context, req model.DeliveryRequest)

// Emit calls f.
func (f SinkFunc) Emit(ctx context.Context, req model.DeliveryRequest) {
	f(ctx, req)
}

// Discard drops every request.
type Discard struct{}

// Emit does nothing.
func (Discard) Emit(context.Context, model.DeliveryRequest) {}

// LogSink logs confirmed delivery requests.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink constructs a LogSink. A nil logger uses slog.Default.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Emit logs the request.
func (s *LogSink) Emit(ctx context.Context, req model.DeliveryRequest) {
	if s == nil {
		return
	}
	s.logger.InfoContext(ctx, "delivery requested",
		"request_id", req.ID,
		"account_id", req.AccountID,
		"address", req.Address.Label,
		"carrier", req.Carrier.Label,
		"item_count", len(req.Items),
		"item_keys", req.ItemKeys(),
		"total_amount", req.TotalAmount.StringFixed(2),
		"comments", req.Comments)
}

// MultiSink forwards requests to several sinks in order.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink constructs a MultiSink.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Emit forwards req to every non-nil sink.
func (m *MultiSink) Emit(ctx context.Context, req model.DeliveryRequest) {
	if m == nil {
		return
	}
	for _, sink := range m.sinks {
		if sink != nil {
			sink.Emit(ctx, req)
		}
	}
}

// Recorder keeps the most recent requests in memory, newest last.
type Recorder struct {
	requests []model.DeliveryRequest
	limit    int
	mu       sync.RWMutex
}

// NewRecorder keeps up to limit requests; limit <= 0 keeps all of them.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Emit records req.
func (r *Recorder) Emit(_ context.Context, req model.DeliveryRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	if r.limit > 0 && len(r.requests) > r.limit {
		r.requests = r.requests[len(r.requests)-r.limit:]
	}
}

// Requests returns a copy of the recorded requests.
func (r *Recorder) Requests() []model.DeliveryRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.DeliveryRequest, len(r.requests))
	copy(out, r.requests)
	return out
}

// Find returns the recorded request with the given id.
func (r *Recorder) Find(id string) (model.DeliveryRequest, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.requests) - 1; i >= 0; i-- {
		if r.requests[i].ID == id {
			return r.requests[i], true
		}
	}
	return model.DeliveryRequest{}, false
}

// Last returns the most recent request for accountID.
func (r *Recorder) Last(accountID string) (model.DeliveryRequest, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.requests) - 1; i >= 0; i-- {
		if r.requests[i].AccountID == accountID {
			return r.requests[i], true
		}
	}
	return model.DeliveryRequest{}, false
}
