package sched

import (
	"slices"
	"testing"
	"time"
)

var epoch = time.Unix(1_700_000_000, 0)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestRunDueOrdersByDueThenSchedule(t *testing.T) {
	q := NewQueue()
	var order []string
	q.After(epoch, ms(30), func(time.Time) { order = append(order, "c") })
	q.After(epoch, ms(10), func(time.Time) { order = append(order, "a") })
	q.After(epoch, ms(10), func(time.Time) { order = append(order, "b") })
	q.After(epoch, ms(50), func(time.Time) { order = append(order, "late") })

	if ran := q.RunDue(epoch.Add(ms(5))); ran != 0 {
		t.Fatalf("ran %d tasks before anything was due", ran)
	}
	if ran := q.RunDue(epoch.Add(ms(30))); ran != 3 {
		t.Fatalf("ran %d tasks, want 3", ran)
	}
	if !slices.Equal(order, []string{"a", "b", "c"}) {
		t.Fatalf("order = %v", order)
	}
	if q.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", q.Pending())
	}
	due, ok := q.NextDue()
	if !ok || !due.Equal(epoch.Add(ms(50))) {
		t.Fatalf("next due = %v %v", due, ok)
	}
}

func TestTaskReceivesDueTime(t *testing.T) {
	q := NewQueue()
	var got time.Time
	q.After(epoch, ms(7), func(due time.Time) { got = due })
	q.RunDue(epoch.Add(time.Second))
	if !got.Equal(epoch.Add(ms(7))) {
		t.Fatalf("task saw %v, want its due time", got)
	}
}

func TestNestedTasksRunInSamePass(t *testing.T) {
	q := NewQueue()
	var order []int
	q.After(epoch, ms(1), func(due time.Time) {
		order = append(order, 1)
		q.After(due, ms(2), func(time.Time) { order = append(order, 2) })
		q.After(due, ms(100), func(time.Time) { order = append(order, 3) })
	})
	q.RunDue(epoch.Add(ms(10)))
	if !slices.Equal(order, []int{1, 2}) {
		t.Fatalf("order = %v", order)
	}
}

func TestCancel(t *testing.T) {
	q := NewQueue()
	fired := 0
	keep := q.After(epoch, ms(1), func(time.Time) { fired++ })
	drop := q.After(epoch, ms(2), func(time.Time) { fired += 10 })
	if !q.Cancel(drop) {
		t.Fatal("cancel of pending task failed")
	}
	if q.Cancel(drop) || q.Cancel(0) {
		t.Fatal("cancel must report false for unknown tokens")
	}
	q.RunDue(epoch.Add(ms(5)))
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	if q.Cancel(keep) {
		t.Fatal("cancel after run must report false")
	}
}

func TestCancelAll(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 5; i++ {
		q.After(epoch, ms(i), func(time.Time) { t.Fatal("cancelled task ran") })
	}
	if n := q.CancelAll(); n != 5 {
		t.Fatalf("cancelled %d, want 5", n)
	}
	q.RunDue(epoch.Add(time.Second))
	if q.Pending() != 0 {
		t.Fatal("queue should be empty")
	}
}
