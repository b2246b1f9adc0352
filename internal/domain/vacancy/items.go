package vacancy

import (
	"fmt"
	"strings"
)

// ItemList is an ordered list of free-text entries owned by one editing
// session, such as the competencies typed into a form.
type ItemList struct {
	items []string
}

// NewItemList adds each of items in order.
func NewItemList(items ...string) *ItemList {
	l := &ItemList{}
	for _, it := range items {
		l.Add(it)
	}
	return l
}

// Add appends item after trimming it. Blank items are dropped and reported false.
func (l *ItemList) Add(item string) bool {
	item = strings.TrimSpace(item)
	if item == "" {
		return false
	}
	l.items = append(l.items, item)
	return true
}

// Remove deletes the item at index i.
func (l *ItemList) Remove(i int) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

// Items returns a copy of the list.
func (l *ItemList) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Len is the number of items.
func (l *ItemList) Len() int { return len(l.items) }
