package gridq

import "container/heap"

// PriorityQueue is a heap-based priority queue using the standard
// library heap, keyed by a float64 priority (lower pops first).
type PriorityQueue[T any] struct {
	data minHeap[T]
}

type item[T any] struct {
	value    T
	priority float64
}

type minHeap[T any] []*item[T]

func (h minHeap[T]) Len() int { return len(h) }

func (h minHeap[T]) Less(i, j int) bool { return h[i].priority < h[j].priority }

func (h *minHeap[T]) Swap(i, j int) {
	(*h)[i], (*h)[j] = (*h)[j], (*h)[i]
}

func (h *minHeap[T]) Push(x any) {
	*h = append(*h, x.(*item[T]))
}

func (h *minHeap[T]) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}

// Push adds a new element with the given priority.
func (pq *PriorityQueue[T]) Push(data T, priority float64) {
	heap.Push(&pq.data, &item[T]{value: data, priority: priority})
}

// Empty reports whether the queue has no elements.
func (pq *PriorityQueue[T]) Empty() bool {
	return len(pq.data) == 0
}

// Len returns the number of elements in the queue.
func (pq *PriorityQueue[T]) Len() int {
	return len(pq.data)
}

// Pop removes and returns the lowest-priority item.
// Returns (zero, false) if the queue is empty.
func (pq *PriorityQueue[T]) Pop() (T, bool) {
	if pq.Empty() {
		var zero T
		return zero, false
	}
	it := heap.Pop(&pq.data).(*item[T])
	return it.value, true
}
