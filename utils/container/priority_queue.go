package container

import "container/heap"

// item 优先队列中单个元素
type item[T any] struct {
	Value    T       // 元素的值
	Priority float64 // 优先级（越小越优先）
	seq      uint64  // 插入序号，优先级相同时先插入者优先
	index    int     // 元素在堆中的索引，由heap.Interface维护
}

// priorityQueue 实现heap.Interface的内部最小堆
type priorityQueue[T any] []*item[T]

func (pq priorityQueue[T]) Len() int { return len(pq) }

// Less 优先级相同时按插入顺序比较，保证出队顺序确定
func (pq priorityQueue[T]) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue[T]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue[T]) Push(x any) {
	n := len(*pq)
	item := x.(*item[T])
	item.index = n
	*pq = append(*pq, item)
}

func (pq *priorityQueue[T]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // 避免内存泄漏
	item.index = -1 // 为了安全起见
	*pq = old[0 : n-1]
	return item
}

// PriorityQueue 优先队列
// 功能：按优先级数值从小到大出队，用于车辆到达事件与相位压力排序
// 说明：优先级相同的元素按插入顺序出队
type PriorityQueue[T any] struct {
	queue priorityQueue[T]
	seq   uint64
}

// NewPriorityQueue 创建优先队列
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{queue: make(priorityQueue[T], 0)}
}

// Len 获取当前队列长度
func (q *PriorityQueue[T]) Len() int {
	return len(q.queue)
}

// First 获取优先级数值最小的元素（不出队）
// 说明：队列为空时panic
func (q *PriorityQueue[T]) First() (value T, priority float64) {
	return q.queue[0].Value, q.queue[0].Priority
}

// Push 加入元素（不维护堆结构）
// 功能：批量加入元素，全部加入后需调用Heapify
func (q *PriorityQueue[T]) Push(value T, priority float64) {
	q.queue = append(q.queue, &item[T]{
		Value:    value,
		Priority: priority,
		seq:      q.nextSeq(),
		index:    len(q.queue),
	})
}

// Heapify 重新构建堆
func (q *PriorityQueue[T]) Heapify() {
	heap.Init(&q.queue)
}

// HeapPush 加入元素并维护堆结构
func (q *PriorityQueue[T]) HeapPush(value T, priority float64) {
	heap.Push(&q.queue, &item[T]{
		Value:    value,
		Priority: priority,
		seq:      q.nextSeq(),
	})
}

// HeapPop 弹出优先级数值最小的元素
func (q *PriorityQueue[T]) HeapPop() (value T, priority float64) {
	item := heap.Pop(&q.queue).(*item[T])
	return item.Value, item.Priority
}

// Clear 清空队列
func (q *PriorityQueue[T]) Clear() {
	clear(q.queue)
	q.queue = q.queue[:0]
	q.seq = 0
}

func (q *PriorityQueue[T]) nextSeq() uint64 {
	q.seq++
	return q.seq
}
