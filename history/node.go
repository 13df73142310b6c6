package history

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// node is one step of the history list.
// undo reverts the mutation that produced this node; redo re-applies it
// starting from prev. The head node has neither.
type node[T any] struct {
	prev *node[T]
	next *node[T]
	undo func(*T)
	redo func(*T)

	id    ulid.ULID
	time  time.Time
	label string
}

// Entry describes one history node.
type Entry struct {
	ID      ulid.ULID `json:"id"`
	Time    time.Time `json:"time"`
	Label   string    `json:"label,omitempty"`
	Index   int       `json:"index"`
	Current bool      `json:"current,omitempty"`
}

func (n *node[T]) entry(index int, current bool) Entry {
	return Entry{
		ID:      n.id,
		Time:    n.time,
		Label:   n.label,
		Index:   index,
		Current: current,
	}
}

func (n *node[T]) chainLength() int {
	count := 0
	for cur := n; cur != nil; cur = cur.next {
		count++
	}
	return count
}
