// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package enrichment

import (
	"container/heap"

	"github.com/google/uuid"
	"github.com/poiesic/medenrich/core"
)

// queueItem is a queued task with its submission sequence number.
// index is maintained by the heap for O(log n) removal on cancel.
type queueItem struct {
	task  *core.Task
	seq   uint64
	index int
}

// taskHeap orders items by priority descending, then submission sequence
// ascending, so equal priorities drain in FIFO order.
type taskHeap []*queueItem

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].task.Priority != h[j].task.Priority {
		return h[i].task.Priority > h[j].task.Priority
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

// taskQueue is a bounded priority queue over pending tasks.
// Not safe for concurrent use; callers hold the processor mutex.
type taskQueue struct {
	heap taskHeap
	byID map[uuid.UUID]*queueItem
	seq  uint64
}

func newTaskQueue() *taskQueue {
	return &taskQueue{
		byID: make(map[uuid.UUID]*queueItem),
	}
}

func (q *taskQueue) len() int {
	return len(q.heap)
}

// push enqueues a task. The sequence counter ties FIFO order within a
// priority band; a retried task gets a fresh sequence number and so
// requeues behind its peers.
func (q *taskQueue) push(task *core.Task) {
	q.seq++
	item := &queueItem{task: task, seq: q.seq}
	heap.Push(&q.heap, item)
	q.byID[task.Id] = item
}

// pop removes and returns the highest-priority task, or nil when empty.
func (q *taskQueue) pop() *core.Task {
	if len(q.heap) == 0 {
		return nil
	}
	item := heap.Pop(&q.heap).(*queueItem)
	delete(q.byID, item.task.Id)
	return item.task
}

// remove takes a specific task out of the queue. Returns false if the
// task is not queued.
func (q *taskQueue) remove(id uuid.UUID) bool {
	item, ok := q.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&q.heap, item.index)
	delete(q.byID, id)
	return true
}
