package importer

import "time"

const (
	msgScraping  = "Scraping device data..."
	msgImporting = "Importing device..."
	msgDone      = "Imported"
)

// drive processes items in index order from the saved position until the run
// is paused, stopped, throttled or exhausted.
func (r *Runner) drive(rs *run) {
	for {
		r.mu.Lock()
		if rs.state != StateRunning {
			rs.looping = false
			r.mu.Unlock()
			return
		}
		if rs.index >= len(rs.items) {
			rs.state = StateCompleted
			rs.looping = false
			rs.finishedAt = time.Now()
			r.publishLocked()
			r.mu.Unlock()

			rs.log.Info("import run completed",
				"total", rs.progress.Total,
				"completed", rs.progress.Completed,
				"failed", rs.progress.Failed,
				"duration", rs.finishedAt.Sub(rs.startedAt).String())
			return
		}

		idx := rs.index
		url := rs.items[idx].URL
		rs.items[idx].Status = StatusScraping
		rs.items[idx].Message = msgScraping
		r.publishLocked()
		r.mu.Unlock()

		status, message := r.process(rs, idx, url)

		r.mu.Lock()
		rs.items[idx].Status = status
		rs.items[idx].Message = message
		if status == StatusDone {
			rs.progress.Completed++
		} else {
			rs.progress.Failed++
		}
		rs.index = idx + 1
		rs.requestCount++

		if rs.requestCount >= r.opts.ThrottleEvery && rs.index < len(rs.items) && rs.state == StateRunning {
			r.beginCooldownLocked(rs)
		}
		r.publishLocked()
		r.mu.Unlock()
	}
}

// process runs the two-phase operation for one item. It is not resumable: a
// scraped payload whose import fails is discarded.
func (r *Runner) process(rs *run, idx int, url string) (Status, string) {
	log := rs.log.With("index", idx, "url", url)

	payload, err := r.scraper.Scrape(rs.ctx, url)
	if err != nil {
		log.Warn("scrape failed", "err", err)
		return StatusFailed, "Scrape failed: " + itemMessage(err, "scrape request failed")
	}

	r.mu.Lock()
	rs.items[idx].Status = StatusImporting
	rs.items[idx].Message = msgImporting
	r.publishLocked()
	r.mu.Unlock()

	if err := r.submitter.Submit(rs.ctx, payload); err != nil {
		log.Warn("import failed", "err", err)
		return StatusFailed, "Import failed: " + itemMessage(err, "import request failed")
	}

	log.Debug("item imported")
	return StatusDone, msgDone
}
