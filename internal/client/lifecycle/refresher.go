package lifecycle

import (
	"sync"
	"time"
)

const DefaultRefreshInterval = 24 * time.Hour

// DailyRefresher calls fn once on Start and then every interval until Stop.
type DailyRefresher struct {
	interval time.Duration
	fn       func()

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewDailyRefresher(interval time.Duration, fn func()) *DailyRefresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &DailyRefresher{interval: interval, fn: fn}
}

func (r *DailyRefresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		return
	}

	r.fn()

	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.loop(r.stop, r.done)
}

func (r *DailyRefresher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.fn()
		}
	}
}

func (r *DailyRefresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop == nil {
		return
	}
	close(r.stop)
	<-r.done
	r.stop, r.done = nil, nil
}
