package paginate

import (
	"fmt"
	"testing"
)

type row struct {
	name    string
	email   string
	company string
	status  string
}

func makeRows(n int) []row {
	rows := make([]row, n)
	for i := range rows {
		rows[i] = row{name: fmt.Sprintf("item-%02d", i)}
	}
	return rows
}

func TestPaginate97Items(t *testing.T) {
	rows := makeRows(97)

	first := Paginate(rows, nil, 1, 10)
	if first.TotalPages != 10 {
		t.Fatalf("expected 10 total pages, got %d", first.TotalPages)
	}
	if len(first.PageItems) != 10 || first.PageItems[0].name != "item-00" || first.PageItems[9].name != "item-09" {
		t.Fatalf("unexpected first page: %v", first.PageItems)
	}
	if first.HasPrev {
		t.Fatal("prev must be disabled on page 1")
	}
	if !first.HasNext {
		t.Fatal("next must be enabled on page 1")
	}

	last := Paginate(rows, nil, 10, 10)
	if len(last.PageItems) != 7 {
		t.Fatalf("expected 7 items on page 10, got %d", len(last.PageItems))
	}
	if last.PageItems[0].name != "item-90" || last.PageItems[6].name != "item-96" {
		t.Fatalf("unexpected last page: %v", last.PageItems)
	}
	if last.HasNext {
		t.Fatal("next must be disabled on the last page")
	}
	if !last.HasPrev {
		t.Fatal("prev must be enabled on the last page")
	}
}

func buttonString(buttons []PageButton) string {
	out := ""
	for _, b := range buttons {
		if b.Ellipsis {
			out += " ..."
			continue
		}
		out += fmt.Sprintf(" %d", b.Page)
	}
	return out
}

func TestButtonsMiddlePage(t *testing.T) {
	got := buttonString(Buttons(10, 5))
	want := " 1 ... 3 4 5 6 7 ... 10"
	if got != want {
		t.Fatalf("got%q want%q", got, want)
	}
}

func TestButtonsNearStart(t *testing.T) {
	// No leading ellipsis until currentPage > delta+2.
	if got := buttonString(Buttons(10, 4)); got != " 1 2 3 4 5 6 ... 10" {
		t.Fatalf("page 4: got%q", got)
	}
	if got := buttonString(Buttons(10, 5)); got != " 1 ... 3 4 5 6 7 ... 10" {
		t.Fatalf("page 5: got%q", got)
	}
}

func TestButtonsNearEnd(t *testing.T) {
	// No trailing ellipsis once currentPage >= totalPages-delta-1.
	if got := buttonString(Buttons(10, 7)); got != " 1 ... 5 6 7 8 9 10" {
		t.Fatalf("page 7: got%q", got)
	}
	if got := buttonString(Buttons(10, 10)); got != " 1 ... 8 9 10" {
		t.Fatalf("page 10: got%q", got)
	}
}

func TestButtonsSinglePage(t *testing.T) {
	got := Buttons(1, 1)
	if len(got) != 1 || got[0].Page != 1 || !got[0].Current {
		t.Fatalf("expected a single current page-1 button, got %v", got)
	}
}

func TestButtonsEmptyList(t *testing.T) {
	// Zero visible pages still renders the page-1 button and nothing else.
	got := Buttons(0, 1)
	if len(got) != 1 || got[0].Page != 1 {
		t.Fatalf("expected lone page-1 button, got %v", got)
	}
}

func TestFiltersAreANDed(t *testing.T) {
	rows := []row{
		{name: "Alice", email: "alice@acme.test", company: "Acme"},
		{name: "Albert", email: "albert@other.test", company: "Other"},
		{name: "Bob", email: "bob@acme.test", company: "Acme"},
	}
	filters := []Predicate[row]{
		TextFilter(func(r row) string { return r.name }, "al"),
		TextFilter(func(r row) string { return r.company }, "acme"),
	}
	got := Filter(rows, filters)
	if len(got) != 1 || got[0].name != "Alice" {
		t.Fatalf("expected only Alice, got %v", got)
	}
}

func TestTextFilterCaseInsensitive(t *testing.T) {
	f := TextFilter(func(r row) string { return r.name }, "ALI")
	if !f(row{name: "alice"}) {
		t.Fatal("substring match must ignore case")
	}
	if f(row{name: "bob"}) {
		t.Fatal("non-matching item kept")
	}
}

func TestValueFilterEmptyMatchesAll(t *testing.T) {
	f := ValueFilter(func(r row) string { return r.status }, "")
	if !f(row{status: "1"}) || !f(row{status: "2"}) {
		t.Fatal("empty enum filter must match everything")
	}
	set := ValueFilter(func(r row) string { return r.status }, "1")
	if !set(row{status: "1"}) || set(row{status: "2"}) {
		t.Fatal("set enum filter must match exactly")
	}
}

func TestControllerFilterChangeResetsPage(t *testing.T) {
	c := NewController[row](10)
	c.SetPage(3)
	c.SetFilters(TextFilter(func(r row) string { return r.name }, "item"))
	if c.Page() != 1 {
		t.Fatalf("filter change must reset to page 1, got %d", c.Page())
	}

	c.SetPage(3)
	c.SetPageSize(25)
	if c.Page() != 1 {
		t.Fatalf("page-size change must reset to page 1, got %d", c.Page())
	}
}

func TestControllerRender(t *testing.T) {
	c := NewController[row](10)
	c.SetPage(2)
	got := c.Render(makeRows(25))
	if got.Page != 2 || len(got.PageItems) != 10 || got.PageItems[0].name != "item-10" {
		t.Fatalf("unexpected render: page=%d items=%v", got.Page, got.PageItems)
	}
}

func TestPageBeyondRangeIsEmpty(t *testing.T) {
	got := Paginate(makeRows(5), nil, 4, 10)
	if len(got.PageItems) != 0 {
		t.Fatalf("expected empty page, got %v", got.PageItems)
	}
}
