package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	v1 "github.com/aevon-lab/machine-events/internal/api/v1"
	"golang.org/x/sync/errgroup"
)

// Summary totals the outcomes of every batch a Sender posted.
type Summary struct {
	Batches  int           `json:"batches"`
	Accepted int           `json:"accepted"`
	Deduped  int           `json:"deduped"`
	Updated  int           `json:"updated"`
	Rejected int           `json:"rejected"`
	Elapsed  time.Duration `json:"elapsed"`
}

func (s *Summary) add(resp *v1.BatchResponse) {
	s.Batches++
	s.Accepted += resp.Accepted
	s.Deduped += resp.Deduped
	s.Updated += resp.Updated
	s.Rejected += resp.Rejected
}

// Sender posts batches to a machine-events service.
type Sender struct {
	client *http.Client
	url    string
}

// NewSender targets url (the full POST /events/batch address). A nil client
// uses http.DefaultClient.
func NewSender(client *http.Client, url string) *Sender {
	if client == nil {
		client = http.DefaultClient
	}
	return &Sender{client: client, url: url}
}

// Send posts events in batches of batchSize with at most concurrency requests
// in flight. The first failed batch cancels the rest.
func (s *Sender) Send(ctx context.Context, events []v1.EventRequest, batchSize, concurrency int) (*Summary, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	started := time.Now()
	summary := &Summary{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, batch := range Chunk(events, batchSize) {
		g.Go(func() error {
			resp, err := s.post(ctx, batch)
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}
			mu.Lock()
			summary.add(resp)
			mu.Unlock()
			slog.Debug("[Loadgen] Batch sent", "batch", i, "size", len(batch), "accepted", resp.Accepted)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	summary.Elapsed = time.Since(started)
	return summary, nil
}

func (s *Sender) post(ctx context.Context, batch []v1.EventRequest) (*v1.BatchResponse, error) {
	body, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("encode batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out v1.BatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
