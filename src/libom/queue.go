package libom

import (
	"container/list"
	"sync"
	"time"
)

// Queue is a blocking FIFO. Producers never block; consumers block on
// Take until an element or Close arrives.
type Queue struct {
	data   *list.List
	lock   sync.Mutex
	signal chan struct{}
	closed bool
}

func NewQueue() *Queue {
	return &Queue{
		data:   list.New(),
		signal: make(chan struct{}, 1),
	}
}

func (q *Queue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.data.Len()
}

func (q *Queue) Put(v interface{}) error {
	q.lock.Lock()
	if q.closed {
		q.lock.Unlock()
		return NewErr("Queue.Put closed")
	}
	q.data.PushBack(v)
	q.lock.Unlock()
	q.wakeup()
	return nil
}

func (q *Queue) wakeup() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *Queue) pop() (interface{}, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()
	ele := q.data.Front()
	if ele == nil {
		if q.closed {
			// Chain the wakeup so every blocked consumer drains out.
			q.wakeup()
		}
		return nil, q.closed
	}
	q.data.Remove(ele)
	if q.data.Len() > 0 {
		q.wakeup()
	}
	return ele.Value, false
}

// Take blocks until an element is available. Returns nil once closed
// and drained.
func (q *Queue) Take() interface{} {
	for {
		if v, done := q.pop(); v != nil || done {
			return v
		}
		<-q.signal
	}
}

// Poll waits up to timeout for an element, returning nil on expiry.
func (q *Queue) Poll(timeout time.Duration) interface{} {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		if v, done := q.pop(); v != nil || done {
			return v
		}
		select {
		case <-q.signal:
		case <-deadline.C:
			return nil
		}
	}
}

func (q *Queue) Close() {
	q.lock.Lock()
	q.closed = true
	q.lock.Unlock()
	q.wakeup()
}
