package metrics

import (
	"sort"
	"sync"
	"time"
)

const (
	endpointWindow      = 1000
	endpointTopN        = 20
	endpointMinSamples  = 10
	endpointSlowP99     = 0.1
	endpointStaleAfter  = 10 * time.Minute
	endpointUpdateEvery = 5 * time.Minute
)

// EndpointTracker keeps a sliding window of handler latencies and publishes
// the slowest p99 values to HTTPMetrics.TopEndpoints.
type EndpointTracker struct {
	mu        sync.Mutex
	endpoints map[string]*endpointStats
	ticker    *time.Ticker
	done      chan struct{}
}

type endpointStats struct {
	durations []float64
	lastSeen  time.Time
}

var (
	trackerMu     sync.Mutex
	globalTracker *EndpointTracker
)

// StartEndpointTracking initializes and starts the endpoint tracker
func StartEndpointTracking() {
	trackerMu.Lock()
	defer trackerMu.Unlock()
	if globalTracker != nil {
		return
	}

	globalTracker = &EndpointTracker{
		endpoints: make(map[string]*endpointStats),
		ticker:    time.NewTicker(endpointUpdateEvery),
		done:      make(chan struct{}),
	}
	go globalTracker.run()
}

// StopEndpointTracking stops the endpoint tracker
func StopEndpointTracking() {
	trackerMu.Lock()
	defer trackerMu.Unlock()
	if globalTracker != nil {
		close(globalTracker.done)
		globalTracker.ticker.Stop()
		globalTracker = nil
	}
}

// TrackEndpoint records one request duration in seconds
func TrackEndpoint(handler string, duration float64) {
	trackerMu.Lock()
	et := globalTracker
	trackerMu.Unlock()
	if et == nil {
		return
	}
	et.record(handler, duration, time.Now())
}

func (et *EndpointTracker) record(handler string, duration float64, now time.Time) {
	et.mu.Lock()
	defer et.mu.Unlock()

	stats, ok := et.endpoints[handler]
	if !ok {
		stats = &endpointStats{durations: make([]float64, 0, endpointWindow)}
		et.endpoints[handler] = stats
	}
	stats.durations = append(stats.durations, duration)
	if len(stats.durations) > endpointWindow {
		stats.durations = stats.durations[len(stats.durations)-endpointWindow:]
	}
	stats.lastSeen = now
}

func (et *EndpointTracker) run() {
	for {
		select {
		case <-et.ticker.C:
			et.publish(time.Now())
		case <-et.done:
			return
		}
	}
}

type endpointP99 struct {
	handler string
	p99     float64
}

// slowest returns at most endpointTopN handlers whose p99 exceeds the slow
// threshold, slowest first.
func (et *EndpointTracker) slowest(now time.Time) []endpointP99 {
	et.mu.Lock()
	defer et.mu.Unlock()

	cutoff := now.Add(-endpointStaleAfter)
	var out []endpointP99
	for handler, stats := range et.endpoints {
		if stats.lastSeen.Before(cutoff) || len(stats.durations) < endpointMinSamples {
			continue
		}
		sorted := append([]float64(nil), stats.durations...)
		sort.Float64s(sorted)
		idx := int(float64(len(sorted)) * 0.99)
		if idx >= len(sorted) {
			idx = len(sorted) - 1
		}
		if p99 := sorted[idx]; p99 > endpointSlowP99 {
			out = append(out, endpointP99{handler: handler, p99: p99})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].p99 > out[j].p99 })
	if len(out) > endpointTopN {
		out = out[:endpointTopN]
	}
	return out
}

func (et *EndpointTracker) publish(now time.Time) {
	top := et.slowest(now)
	gauge := GetMetrics().HTTP.TopEndpoints
	gauge.Reset()
	for _, e := range top {
		gauge.WithLabelValues(e.handler).Set(e.p99)
	}
}
