package ui

import (
	"context"
	"sync"

	"github.com/aristath/tradeboard/internal/api"
	"github.com/aristath/tradeboard/internal/poller"
	"github.com/aristath/tradeboard/internal/scheduler"
)

// Backend is what the dashboard drives: authentication, the polling lifecycle and trades.
type Backend interface {
	Login(ctx context.Context, username, password string) error
	Start()
	Stop()
	Refresh()
	Trade(ctx context.Context, action api.Action) error
}

// Controller is the Backend used by the dashboard binary.
type Controller struct {
	mu        sync.Mutex
	client    *api.Client
	scheduler *scheduler.Scheduler
	poller    *poller.Poller
}

func NewController(client *api.Client, s *scheduler.Scheduler, p *poller.Poller) *Controller {
	return &Controller{client: client, scheduler: s, poller: p}
}

func (c *Controller) Login(ctx context.Context, username, password string) error {
	return c.client.Login(ctx, username, password)
}

// Start begins polling. It is a no-op while polling is already running.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.scheduler.Running() {
		c.scheduler.Start()
	}
}

// Stop halts polling, aborting requests in flight.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scheduler.Stop()
}

// Refresh triggers an immediate poll of every endpoint.
func (c *Controller) Refresh() {
	for _, name := range []string{poller.JobAccountSummary, poller.JobPositions, poller.JobMarketData} {
		_ = c.scheduler.RunNow(name)
	}
}

func (c *Controller) Trade(ctx context.Context, action api.Action) error {
	return c.poller.SubmitTrade(ctx, action)
}
