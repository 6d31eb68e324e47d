// Package sched provides a cooperative timer queue. Tasks never run on their
// own goroutine: the owner calls RunDue from its loop, so task bodies may
// mutate the owner's state without locks.
package sched

import (
	"container/heap"
	"time"
)

// Token identifies a scheduled task for cancellation. The zero Token never
// refers to a task.
type Token uint64

// Task is invoked with the time it was due at.
type Task func(due time.Time)

type entry struct {
	due   time.Time
	seq   uint64
	token Token
	fn    Task
	index int
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}
func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue orders tasks by due time, breaking ties by scheduling order.
type Queue struct {
	h      entryHeap
	byTok  map[Token]*entry
	seq    uint64
	nextID Token
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{byTok: map[Token]*entry{}}
}

// After schedules fn to run once d has elapsed since now. Negative delays run
// on the next RunDue.
func (q *Queue) After(now time.Time, d time.Duration, fn Task) Token {
	if d < 0 {
		d = 0
	}
	return q.At(now.Add(d), fn)
}

// At schedules fn to run at due.
func (q *Queue) At(due time.Time, fn Task) Token {
	q.seq++
	q.nextID++
	e := &entry{due: due, seq: q.seq, token: q.nextID, fn: fn}
	heap.Push(&q.h, e)
	q.byTok[e.token] = e
	return e.token
}

// Cancel removes a pending task. It reports false if the task already ran or
// was cancelled.
func (q *Queue) Cancel(tok Token) bool {
	e, ok := q.byTok[tok]
	if !ok {
		return false
	}
	heap.Remove(&q.h, e.index)
	delete(q.byTok, tok)
	return true
}

// CancelAll drops every pending task and returns how many were dropped.
func (q *Queue) CancelAll() int {
	n := len(q.h)
	q.h = nil
	q.byTok = map[Token]*entry{}
	return n
}

// Pending returns the number of scheduled tasks.
func (q *Queue) Pending() int { return len(q.h) }

// NextDue returns the due time of the earliest task.
func (q *Queue) NextDue() (time.Time, bool) {
	if len(q.h) == 0 {
		return time.Time{}, false
	}
	return q.h[0].due, true
}

// RunDue runs every task due at or before now, earliest first, and returns
// how many ran. Tasks scheduled by a running task are picked up in the same
// pass when they are already due.
func (q *Queue) RunDue(now time.Time) int {
	ran := 0
	for len(q.h) > 0 && !q.h[0].due.After(now) {
		e := heap.Pop(&q.h).(*entry)
		delete(q.byTok, e.token)
		e.fn(e.due)
		ran++
	}
	return ran
}
