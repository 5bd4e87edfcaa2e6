// ABOUTME: Job submission facade and fixed-interval status poller
// ABOUTME: Polls until a terminal state with a single-in-flight guard

package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/kilexep/web-gateway/models"
)

// DefaultPollInterval matches the original frontend's 2-second tick.
const DefaultPollInterval = 2 * time.Second

// StartJob submits an automation run and returns the backend's job ID.
// Missing credentials fail fast without a network call.
func (c *Client) StartJob(ctx context.Context, naverID, naverPW string) (string, error) {
	if naverID == "" || naverPW == "" {
		return "", &APIError{
			Status:  http.StatusBadRequest,
			Message: models.MsgJobCredentialsRequired,
		}
	}

	body, err := c.Request(ctx, http.MethodPost, "/api/start_job", models.StartJobRequest{
		NaverID: naverID,
		NaverPW: naverPW,
	})
	if err != nil {
		return "", err
	}

	return gjson.GetBytes(body, "job_id").String(), nil
}

// Poller repeatedly fetches one job's status on a fixed interval until the
// job reaches a terminal state (completed or failed). Individual poll
// failures are logged and do not stop polling. There is no attempt cap or
// timeout on non-terminal states; bound the run with ctx if needed.
type Poller struct {
	client   *Client
	jobID    string
	interval time.Duration

	// OnUpdate, when set before Start, is invoked with every snapshot.
	OnUpdate func(models.Job)

	mu     sync.Mutex
	latest *models.Job

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a poller for jobID at the default 2s interval. The
// done channel exists from construction so callers may select on Done()
// before Start without blocking on a nil channel.
func (c *Client) NewPoller(jobID string) *Poller {
	return &Poller{
		client:   c,
		jobID:    jobID,
		interval: DefaultPollInterval,
		done:     make(chan struct{}),
	}
}

// Start launches the polling loop. Call Stop (or cancel ctx) to end it
// early; otherwise it ends itself at the first terminal snapshot.
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	go p.run(ctx)
}

// Stop cancels polling. Safe to call after the loop already finished.
func (p *Poller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}

// Done is closed when polling has stopped, for any reason.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Latest returns the most recent snapshot, if any poll has succeeded yet.
func (p *Poller) Latest() (models.Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.latest == nil {
		return models.Job{}, false
	}
	return *p.latest, true
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// The fetch runs synchronously on this goroutine, so a slow
			// request can never overlap the next tick's request; missed
			// ticks are dropped by the ticker.
			if terminal := p.poll(ctx); terminal {
				return
			}
		}
	}
}

// poll fetches one snapshot. Returns true when the job reached a terminal
// state and polling must stop.
func (p *Poller) poll(ctx context.Context) bool {
	body, err := p.client.Request(ctx, http.MethodGet, "/api/job_status/"+p.jobID, nil)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		// Transient failure: keep the interval running
		slog.Warn("Job status poll failed", "job_id", p.jobID, "error", err)
		return false
	}

	var job models.Job
	if err := json.Unmarshal(body, &job); err != nil {
		slog.Warn("Job status unmarshal failed", "job_id", p.jobID, "error", err)
		return false
	}

	p.mu.Lock()
	p.latest = &job
	p.mu.Unlock()

	if p.OnUpdate != nil {
		p.OnUpdate(job)
	}

	return models.JobTerminal(job.Status)
}
