package catalog

import "strings"

// PageSize is the number of products fetched per page.
const PageSize = 10

type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

// ParseDirection maps the raw query value to a Direction. Anything other
// than "previous" means next.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(DirectionPrevious)) {
		return DirectionPrevious
	}
	return DirectionNext
}

type Mode int

const (
	FirstFromStart Mode = iota
	FirstAfter
	LastBefore
)

func (m Mode) String() string {
	switch m {
	case FirstAfter:
		return "first-after"
	case LastBefore:
		return "last-before"
	default:
		return "first-from-start"
	}
}

// Directive describes which slice of the catalog to request.
type Directive struct {
	Mode     Mode
	Cursor   string
	PageSize int
}

func NewDirective(cursor, direction string) Directive {
	if cursor == "" {
		return Directive{Mode: FirstFromStart, PageSize: PageSize}
	}
	if ParseDirection(direction) == DirectionPrevious {
		return Directive{Mode: LastBefore, Cursor: cursor, PageSize: PageSize}
	}
	return Directive{Mode: FirstAfter, Cursor: cursor, PageSize: PageSize}
}

// Variables renders the directive as GraphQL variables. Keys that do not
// apply to the mode are left out so the server sees them as null.
func (d Directive) Variables() map[string]any {
	size := d.PageSize
	if size <= 0 {
		size = PageSize
	}

	switch d.Mode {
	case FirstAfter:
		return map[string]any{"first": size, "after": d.Cursor}
	case LastBefore:
		return map[string]any{"last": size, "before": d.Cursor}
	default:
		return map[string]any{"first": size}
	}
}
