package container

import (
	"fmt"
	"log"
)

// IHasVAndLength 具有速度和长度属性的接口
// 功能：定义车辆作为链表元素时需要的关键信息接口
type IHasVAndLength interface {
	V() float64      // 获取速度
	Length() float64 // 获取长度
}

// ListNode 有序双向链表中的节点
// 功能：保存车辆及其在车道上的位置S
// 说明：链表按S升序排列，头部为车道起点附近的车辆，尾部为最靠近停止线的车辆
type ListNode[T IHasVAndLength] struct {
	parent     *List[T]     // 所属链表
	prev, next *ListNode[T] // 前驱和后继节点
	S          float64      // 键值（车辆在车道上的位置）
	Value      T
}

// NewListNode 创建不属于任何链表的节点
func NewListNode[T IHasVAndLength](s float64, value T) *ListNode[T] {
	return &ListNode[T]{S: s, Value: value}
}

func (n *ListNode[T]) String() string {
	return fmt.Sprintf("Node{Key:%v, Value:%+v}", n.S, n.Value)
}

// Prev 获取节点的前一个节点（S更小，位于后方）
func (n *ListNode[T]) Prev() *ListNode[T] {
	return n.prev
}

// Next 获取节点的下一个节点（S更大，即前车）
func (n *ListNode[T]) Next() *ListNode[T] {
	return n.next
}

// Parent 获取节点所在的链表
func (n *ListNode[T]) Parent() *List[T] {
	return n.parent
}

// V 获取节点值的速度
func (n *ListNode[T]) V() float64 {
	return n.Value.V()
}

// L 获取节点值的长度
func (n *ListNode[T]) L() float64 {
	return n.Value.Length()
}

// InsertBefore 在节点前插入新节点
// 功能：在当前节点之前插入一个新节点
// 参数：add-要插入的新节点
// 说明：调用方负责保证插入后链表仍按S有序
func (n *ListNode[T]) InsertBefore(add *ListNode[T]) {
	if add.parent != nil {
		log.Panic("insert node who already in list")
	}
	add.parent = n.parent
	add.next = n
	add.prev = n.prev
	n.prev = add
	if add.prev != nil {
		add.prev.next = add
	} else {
		add.parent.head = add
	}
	n.parent.length++
}

// InsertAfter 在节点后插入新节点
func (n *ListNode[T]) InsertAfter(add *ListNode[T]) {
	if add.parent != nil {
		log.Panic("insert node who already in list")
	}
	add.parent = n.parent
	add.prev = n
	add.next = n.next
	n.next = add
	if add.next != nil {
		add.next.prev = add
	} else {
		add.parent.tail = add
	}
	n.parent.length++
}

// List 有序双向链表
// 功能：存储车道上的车辆，支持O(1)的首尾访问和删除
type List[T IHasVAndLength] struct {
	ID         string       // 链表标识符
	head, tail *ListNode[T] // 头尾节点指针
	length     int
}

// NewList 创建空链表
func NewList[T IHasVAndLength](id string) *List[T] {
	return &List[T]{ID: id}
}

func (l *List[T]) String() string {
	return fmt.Sprintf("List{ID:%v, Len:%v}", l.ID, l.length)
}

// Keys 按从头到尾的顺序返回所有节点的S
func (l *List[T]) Keys() []float64 {
	keys := make([]float64, 0, l.length)
	for node := l.head; node != nil; node = node.next {
		keys = append(keys, node.S)
	}
	return keys
}

// Values 按从头到尾的顺序返回所有节点的值
func (l *List[T]) Values() []T {
	values := make([]T, 0, l.length)
	for node := l.head; node != nil; node = node.next {
		values = append(values, node.Value)
	}
	return values
}

// Len 获取链表长度
func (l *List[T]) Len() int {
	return l.length
}

// PushFront 向链表头部插入节点
// 功能：新进入车道的车辆S最小，总是插入头部
// 参数：add-要插入的新节点
func (l *List[T]) PushFront(add *ListNode[T]) {
	if add.parent != nil {
		log.Panic("push front node who already in list")
	}
	add.next = nil
	add.prev = nil
	if l.head == nil {
		add.parent = l
		l.head = add
		l.tail = add
		l.length++
	} else {
		// length++和add.parent在InsertBefore中处理
		l.head.InsertBefore(add)
	}
}

// PushBack 向链表尾部插入节点
func (l *List[T]) PushBack(add *ListNode[T]) {
	if add.parent != nil {
		log.Panic("push back node who already in list")
	}
	add.next = nil
	add.prev = nil
	if l.tail == nil {
		add.parent = l
		l.head = add
		l.tail = add
		l.length++
	} else {
		l.tail.InsertAfter(add)
	}
}

// Remove 从链表中移除节点
// 功能：删除指定节点并清空其指针，使节点可以再次插入
// 参数：node-要删除的节点，必须属于当前链表
func (l *List[T]) Remove(node *ListNode[T]) {
	if node.parent != l {
		log.Panic("remove node from wrong list")
	}
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
	node.parent = nil
	l.length--
}

// Clear 清空链表
func (l *List[T]) Clear() {
	for node := l.head; node != nil; {
		next := node.next
		node.prev, node.next, node.parent = nil, nil, nil
		node = next
	}
	l.head, l.tail, l.length = nil, nil, 0
}

// First 获取链表头部节点，链表为空时返回nil
func (l *List[T]) First() *ListNode[T] {
	return l.head
}

// Last 获取链表尾部节点，链表为空时返回nil
func (l *List[T]) Last() *ListNode[T] {
	return l.tail
}
