package store

import (
	"time"

	"github.com/craftlens/craftlens/internal/models"
)

// LoadQueue reads the retry queue. A missing or corrupt file yields an
// empty queue.
func (l *Local) LoadQueue() []models.QueuedReport {
	var queue []models.QueuedReport
	l.readJSON(queueFile, &queue)
	return queue
}

// SaveQueue rewrites the queue in full with exactly the given items.
func (l *Local) SaveQueue(queue []models.QueuedReport) {
	if queue == nil {
		queue = []models.QueuedReport{}
	}
	l.writeJSON(queueFile, queue)
}

// Enqueue appends a report to the bounded FIFO retry queue, evicting the
// oldest entries past the cap.
func (l *Local) Enqueue(report models.WorkReport, now time.Time) {
	queue := l.LoadQueue()
	queue = append(queue, models.QueuedReport{
		Report:   report,
		QueuedAt: now,
	})
	if len(queue) > QueueCap {
		queue = queue[len(queue)-QueueCap:]
	}
	l.SaveQueue(queue)
}
