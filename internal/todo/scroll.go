package todo

// Element names a rendered element the editor can ask to reveal.
type Element int

const (
	// ElementInput is the draft input.
	ElementInput Element = iota
	// ElementFirstRow is the first displayed task row.
	ElementFirstRow
)

func (e Element) String() string {
	switch e {
	case ElementInput:
		return "input"
	case ElementFirstRow:
		return "first-row"
	default:
		return "unknown"
	}
}

// Scroller reveals a rendered element. Implementations must tolerate an
// element that is not currently rendered.
type Scroller interface {
	ScrollIntoView(el Element)
}

// NopScroller ignores every request.
type NopScroller struct{}

// ScrollIntoView implements Scroller.
func (NopScroller) ScrollIntoView(Element) {}

// ScrollFunc adapts a function to Scroller.
type ScrollFunc func(Element)

// ScrollIntoView implements Scroller.
func (f ScrollFunc) ScrollIntoView(el Element) {
	if f != nil {
		f(el)
	}
}
