// Package monitor periodically refreshes weather for configured coordinates.
// It is fire-and-forget: failures are logged and otherwise ignored, and no
// retry escalation happens beyond what the provider layer already does.
package monitor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/golfcast/internal/engine"
	"github.com/i474232898/golfcast/internal/weather"
)

// Monitor drives the engine's query operations on a fixed interval so caches
// stay warm and alerts are checked without interactive traffic.
type Monitor struct {
	scheduler   *gocron.Scheduler
	engine      *engine.Engine
	coordinates []weather.Coordinate
	interval    time.Duration
}

// New creates a new Monitor.
func New(coordinates []weather.Coordinate, interval time.Duration, eng *engine.Engine) *Monitor {
	s := gocron.NewScheduler(time.UTC)
	return &Monitor{
		scheduler:   s,
		engine:      eng,
		coordinates: coordinates,
		interval:    interval,
	}
}

// Start schedules the periodic refresh and starts the underlying scheduler.
func (m *Monitor) Start() error {
	if len(m.coordinates) == 0 {
		log.Println("monitor: no coordinates configured; nothing to schedule")
		return nil
	}

	minutes := int(m.interval.Minutes())
	if minutes <= 0 {
		minutes = 5
	}

	_, err := m.scheduler.Every(minutes).Minutes().Do(func() {
		var wg sync.WaitGroup
		for _, coord := range m.coordinates {
			coord := coord
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if _, err := m.engine.CurrentWeather(ctx, coord); err != nil {
					log.Printf("monitor: weather refresh failed for %s: %v", coord.Key(), err)
				}
				if alerts, err := m.engine.Alerts(ctx, coord); err == nil && len(alerts) > 0 {
					log.Printf("monitor: %d active alerts for %s", len(alerts), coord.Key())
				}
			}()
		}
		wg.Wait()
	})
	if err != nil {
		return err
	}

	m.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (m *Monitor) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
}
