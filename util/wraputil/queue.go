package wraputil

// fragQueue is the pending queue of arena indices awaiting layout.
type fragQueue struct {
	s []int
}

func (q *fragQueue) Len() int { return len(q.s) }

func (q *fragQueue) PushBack(idx int) {
	q.s = append(q.s, idx)
}

func (q *fragQueue) PushFront(idx int) {
	q.s = append(q.s, 0)
	copy(q.s[1:], q.s)
	q.s[0] = idx
}

func (q *fragQueue) PopFront() int {
	if len(q.s) == 0 {
		panic("wraputil: pop from empty queue")
	}
	idx := q.s[0]
	q.s = q.s[1:]
	return idx
}

func (q *fragQueue) Front() (int, bool) {
	if len(q.s) == 0 {
		return 0, false
	}
	return q.s[0], true
}

func (q *fragQueue) items() []int { return q.s }

func (q *fragQueue) clear() { q.s = nil }
