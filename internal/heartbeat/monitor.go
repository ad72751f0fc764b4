// Package heartbeat reports whether an external endpoint is reachable.
// It never reads or writes the business document.
package heartbeat

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/vortex-console/internal/metrics"
	"github.com/rs/zerolog"
)

type Status string

const (
	Unknown Status = "Unknown"
	Online  Status = "Online"
	Offline Status = "Offline"
)

// ProbeFunc reports nil when url answered within timeout.
type ProbeFunc func(ctx context.Context, url string, timeout time.Duration) error

// HeadProbe sends one HEAD request. Any response, whatever its status code,
// counts as reachable.
func HeadProbe(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := fiber.Head(url)
	agent.Timeout(timeout)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return fmt.Errorf("invalid heartbeat url %q: %w", url, err)
	}

	_, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

type Monitor struct {
	url      string
	interval time.Duration
	timeout  time.Duration
	probe    ProbeFunc
	log      zerolog.Logger
	status   atomic.Value
	checked  atomic.Int64
}

func NewMonitor(url string, interval, timeout time.Duration, log zerolog.Logger) *Monitor {
	m := &Monitor{
		url:      url,
		interval: interval,
		timeout:  timeout,
		probe:    HeadProbe,
		log:      log.With().Str("component", "heartbeat").Str("url", url).Logger(),
	}
	m.status.Store(Unknown)
	return m
}

// WithProbe replaces the probe, for tests and alternate transports.
func (m *Monitor) WithProbe(p ProbeFunc) *Monitor {
	m.probe = p
	return m
}

func (m *Monitor) Status() Status {
	return m.status.Load().(Status)
}

// CheckedAt is the time of the last completed probe, zero before the first.
func (m *Monitor) CheckedAt() time.Time {
	ns := m.checked.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns).UTC()
}

func (m *Monitor) URL() string {
	return m.url
}

// Check runs one probe and records its outcome.
func (m *Monitor) Check(ctx context.Context) Status {
	status := Online
	if err := m.probe(ctx, m.url, m.timeout); err != nil {
		status = Offline
		m.log.Debug().Err(err).Msg("heartbeat probe failed")
	}

	if prev := m.Status(); prev != status {
		m.log.Info().Str("from", string(prev)).Str("to", string(status)).Msg("heartbeat status changed")
	}
	m.status.Store(status)
	m.checked.Store(time.Now().UnixNano())

	if status == Online {
		metrics.HeartbeatUp.Set(1)
	} else {
		metrics.HeartbeatUp.Set(0)
	}
	return status
}

// Run probes immediately and then once per interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
