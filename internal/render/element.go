package render

// ElementKind как элемент привязывается к интерфейсу.
type ElementKind string

const (
	KindText   ElementKind = "text"
	KindButton ElementKind = "button"
	KindBar    ElementKind = "bar"
	KindList   ElementKind = "list"
)

// Element узел дерева элементов экрана. ID совпадает с id элемента
// страницы.
type Element struct {
	ID       string      `json:"id"`
	Kind     ElementKind `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Disabled bool        `json:"disabled,omitempty"`
	Width    string      `json:"width,omitempty"`
	Items    []string    `json:"items,omitempty"`
}

func text(id, value string) Element {
	return Element{ID: id, Kind: KindText, Text: value}
}

func button(id string, disabled bool) Element {
	return Element{ID: id, Kind: KindButton, Disabled: disabled}
}

func bar(id, width string) Element {
	return Element{ID: id, Kind: KindBar, Width: width}
}

func list(id string, items []string) Element {
	return Element{ID: id, Kind: KindList, Items: items}
}
