package importer

import "time"

type ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func newTimeTicker(d time.Duration) ticker {
	return timeTicker{t: time.NewTicker(d)}
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// beginCooldownLocked switches the run to AutoPaused and starts the countdown.
func (r *Runner) beginCooldownLocked(rs *run) {
	r.cancelCooldownLocked(rs)

	rs.state = StateAutoPaused
	rs.countdown = r.opts.cooldownTicks()
	stop := make(chan struct{})
	rs.stopCooldown = stop

	rs.log.Info("auto-throttle cool-down started",
		"index", rs.index, "request_count", rs.requestCount, "countdown", rs.countdown)

	go r.cooldown(rs, r.newTicker(r.opts.Tick), stop)
}

func (r *Runner) cancelCooldownLocked(rs *run) {
	if rs.stopCooldown != nil {
		close(rs.stopCooldown)
		rs.stopCooldown = nil
	}
}

// cooldown ticks the countdown down to zero, then clears the request counter
// and hands the run back to the driver at its saved index. Every tick
// re-checks the state, so a Stop racing with the ticker never resumes the run.
func (r *Runner) cooldown(rs *run, t ticker, stop <-chan struct{}) {
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C():
		}

		r.mu.Lock()
		if rs.state != StateAutoPaused || rs.stopCooldown != stop {
			r.mu.Unlock()
			return
		}

		rs.countdown--
		if rs.countdown > 0 {
			r.publishLocked()
			r.mu.Unlock()
			continue
		}

		rs.countdown = 0
		rs.requestCount = 0
		rs.stopCooldown = nil
		rs.state = StateRunning
		r.ensureDriverLocked(rs)
		r.publishLocked()
		r.mu.Unlock()

		rs.log.Info("auto-throttle cool-down finished, resuming", "index", rs.index)
		return
	}
}
