package paginate

import "strings"

// delta is the number of pages of context shown on each side of the current
// page in the button row.
const delta = 2

// Predicate reports whether an item stays visible. All predicates on a list
// are ANDed together.
type Predicate[T any] func(T) bool

// PageButton is one control in the rendered pagination row. Ellipsis buttons
// carry no page number.
type PageButton struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// Result is the visible page plus the control metadata a list view renders.
// HasPrev/HasNext drive disabled (not hidden) boundary controls.
type Result[T any] struct {
	PageItems  []T          `json:"page_items"`
	TotalItems int          `json:"total_items"`
	TotalPages int          `json:"total_pages"`
	Page       int          `json:"page"`
	Buttons    []PageButton `json:"buttons"`
	HasPrev    bool         `json:"has_prev"`
	HasNext    bool         `json:"has_next"`
}

// TextFilter matches when the item's field contains query, case-insensitively.
// An empty query matches everything.
func TextFilter[T any](field func(T) string, query string) Predicate[T] {
	query = strings.ToLower(query)
	return func(item T) bool {
		return strings.Contains(strings.ToLower(field(item)), query)
	}
}

// ValueFilter matches when the item's field equals value exactly. An empty
// filter value matches everything.
func ValueFilter[T any](field func(T) string, value string) Predicate[T] {
	return func(item T) bool {
		return value == "" || field(item) == value
	}
}

// Filter keeps the items every predicate accepts.
func Filter[T any](items []T, filters []Predicate[T]) []T {
	visible := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, f := range filters {
			if !f(item) {
				keep = false
				break
			}
		}
		if keep {
			visible = append(visible, item)
		}
	}
	return visible
}

// Paginate filters items and slices out the requested 1-based page.
func Paginate[T any](items []T, filters []Predicate[T], page, pageSize int) Result[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	visible := Filter(items, filters)
	totalPages := (len(visible) + pageSize - 1) / pageSize

	lo := (page - 1) * pageSize
	hi := lo + pageSize
	if lo > len(visible) {
		lo = len(visible)
	}
	if hi > len(visible) {
		hi = len(visible)
	}

	return Result[T]{
		PageItems:  visible[lo:hi],
		TotalItems: len(visible),
		TotalPages: totalPages,
		Page:       page,
		Buttons:    Buttons(totalPages, page),
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// Buttons renders the page-number row: page 1 always, a delta-sized block
// around the current page, ellipses where the block detaches from either end,
// and the last page whenever there is more than one.
func Buttons(totalPages, currentPage int) []PageButton {
	buttons := []PageButton{{Page: 1, Current: currentPage == 1}}

	if currentPage > delta+2 {
		buttons = append(buttons, PageButton{Ellipsis: true})
	}

	start := max(2, currentPage-delta)
	end := min(totalPages-1, currentPage+delta)
	for i := start; i <= end; i++ {
		buttons = append(buttons, PageButton{Page: i, Current: currentPage == i})
	}

	if currentPage < totalPages-delta-1 {
		buttons = append(buttons, PageButton{Ellipsis: true})
	}

	if totalPages > 1 {
		buttons = append(buttons, PageButton{Page: totalPages, Current: currentPage == totalPages})
	}

	return buttons
}

// Controller holds the mutable list-view state: current page, page size and
// the active filter set. Changing the filters or the page size moves the view
// back to page 1.
type Controller[T any] struct {
	page     int
	pageSize int
	filters  []Predicate[T]
}

func NewController[T any](pageSize int) *Controller[T] {
	if pageSize < 1 {
		pageSize = 10
	}
	return &Controller[T]{page: 1, pageSize: pageSize}
}

func (c *Controller[T]) Page() int { return c.page }

func (c *Controller[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.page = page
}

func (c *Controller[T]) SetPageSize(pageSize int) {
	if pageSize < 1 {
		return
	}
	c.pageSize = pageSize
	c.page = 1
}

func (c *Controller[T]) SetFilters(filters ...Predicate[T]) {
	c.filters = filters
	c.page = 1
}

func (c *Controller[T]) Render(items []T) Result[T] {
	return Paginate(items, c.filters, c.page, c.pageSize)
}
