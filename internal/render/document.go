package render

import (
	"maps"
	"slices"
	"sync"

	"auction_client/internal/domain/value"
)

type MutationOp string

const (
	OpSetText     MutationOp = "set_text"
	OpSetDisabled MutationOp = "set_disabled"
	OpSetWidth    MutationOp = "set_width"
	// OpReplaceItems список заменяется целиком, по элементам не сравнивается.
	OpReplaceItems MutationOp = "replace_items"
)

// Mutation одно изменение элемента страницы.
type Mutation struct {
	Screen    value.Screen `json:"screen"`
	ElementID string       `json:"element_id"`
	Op        MutationOp   `json:"op"`
	Value     any          `json:"value"`
}

// Document зеркало элементов всех экранов. Apply переводит кадр в
// минимальный набор изменений относительно того, что уже показано.
type Document struct {
	mu      sync.Mutex
	screens map[value.Screen]map[string]Element
}

func NewDocument() *Document {
	return &Document{
		screens: make(map[value.Screen]map[string]Element),
	}
}

// Apply применяет кадр. Повторное применение того же кадра даёт пустой
// список изменений.
func (d *Document) Apply(frame Frame) []Mutation {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, ok := d.screens[frame.Screen]
	if !ok {
		current = make(map[string]Element, len(frame.Elements))
		d.screens[frame.Screen] = current
	}

	var mutations []Mutation

	for _, next := range frame.Elements {
		prev, seen := current[next.ID]
		current[next.ID] = cloneElement(next)

		mutate := func(op MutationOp, v any) {
			mutations = append(mutations, Mutation{
				Screen:    frame.Screen,
				ElementID: next.ID,
				Op:        op,
				Value:     v,
			})
		}

		switch next.Kind {
		case KindText:
			if !seen || prev.Text != next.Text {
				mutate(OpSetText, next.Text)
			}
		case KindButton:
			if !seen || prev.Disabled != next.Disabled {
				mutate(OpSetDisabled, next.Disabled)
			}
		case KindBar:
			if !seen || prev.Width != next.Width {
				mutate(OpSetWidth, next.Width)
			}
		case KindList:
			if !seen || !slices.Equal(prev.Items, next.Items) {
				mutate(OpReplaceItems, slices.Clone(next.Items))
			}
		}
	}

	return mutations
}

// Elements текущее дерево экрана в порядке id.
func (d *Document) Elements(screen value.Screen) []Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	current := d.screens[screen]

	elements := make([]Element, 0, len(current))
	for _, id := range slices.Sorted(maps.Keys(current)) {
		elements = append(elements, cloneElement(current[id]))
	}

	return elements
}

// Element элемент экрана по id.
func (d *Document) Element(screen value.Screen, id string) (Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	element, ok := d.screens[screen][id]

	return cloneElement(element), ok
}

func cloneElement(e Element) Element {
	e.Items = slices.Clone(e.Items)
	return e
}
