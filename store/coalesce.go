package store

import (
	"sync"
	"time"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
)

// Coalescer batches rapid consecutive writes to the same task into a
// single trailing-edge write: each Enqueue restarts the task's quiet-window
// timer and only the final enqueued state is persisted once the window
// elapses. Writes to different tasks never coalesce with each other.
type Coalescer struct {
	flush func(models.Task)
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingWrite
	stopped bool
}

type pendingWrite struct {
	timer *time.Timer
	task  models.Task
}

// NewCoalescer creates a coalescer that calls flush with the final task
// state after the quiet window. flush runs on a timer goroutine; it is the
// caller's job to hand the write to the TaskStore (and surface errors).
func NewCoalescer(flush func(models.Task), delay time.Duration) *Coalescer {
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	return &Coalescer{
		flush:   flush,
		delay:   delay,
		pending: make(map[string]*pendingWrite),
	}
}

// Enqueue records the task's latest state and restarts its quiet window.
func (c *Coalescer) Enqueue(task models.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	if p, ok := c.pending[task.ID]; ok {
		p.task = task
		p.timer.Reset(c.delay)
		return
	}
	p := &pendingWrite{task: task}
	id := task.ID
	p.timer = time.AfterFunc(c.delay, func() { c.fire(id) })
	c.pending[id] = p
}

func (c *Coalescer) fire(id string) {
	c.mu.Lock()
	p, ok := c.pending[id]
	if !ok {
		c.mu.Unlock()
		return
	}
	delete(c.pending, id)
	task := p.task
	c.mu.Unlock()

	c.flush(task)
}

// Flush synchronously writes out every pending task, regardless of its
// remaining quiet window. Used on sign-out and process exit so coalesced
// state is never dropped.
func (c *Coalescer) Flush() {
	c.mu.Lock()
	var tasks []models.Task
	for id, p := range c.pending {
		p.timer.Stop()
		tasks = append(tasks, p.task)
		delete(c.pending, id)
	}
	c.mu.Unlock()

	for _, t := range tasks {
		c.flush(t)
	}
}

// Stop flushes pending writes and refuses further enqueues.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
	c.Flush()
}
