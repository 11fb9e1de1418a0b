package sim

import (
	"sort"
	"time"

	"github.com/san-kum/buildatom/internal/placement"
)

type task struct {
	token placement.Token
	due   time.Duration
	fn    func()
}

// Queue is a cooperative scheduler driven by the simulation clock. Tasks only
// run from Advance, so they never race with input handling.
type Queue struct {
	now   time.Duration
	next  placement.Token
	tasks []task
}

func NewQueue() *Queue { return &Queue{} }

func (q *Queue) Schedule(delay time.Duration, fn func()) placement.Token {
	if delay < 0 {
		delay = 0
	}
	q.next++
	q.tasks = append(q.tasks, task{token: q.next, due: q.now + delay, fn: fn})
	return q.next
}

func (q *Queue) Cancel(t placement.Token) {
	for i, tk := range q.tasks {
		if tk.token == t {
			q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
			return
		}
	}
}

func (q *Queue) Pending() int { return len(q.tasks) }

func (q *Queue) Now() time.Duration { return q.now }

// Advance moves the clock forward and runs every task that has come due, in
// due order. Tasks scheduled by a running task wait for a later Advance.
func (q *Queue) Advance(d time.Duration) {
	if d > 0 {
		q.now += d
	}

	var due []task
	kept := q.tasks[:0]
	for _, tk := range q.tasks {
		if tk.due <= q.now {
			due = append(due, tk)
		} else {
			kept = append(kept, tk)
		}
	}
	q.tasks = kept

	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, tk := range due {
		tk.fn()
	}
}
