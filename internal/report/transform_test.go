package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/starford/dagaz/internal/index"
)

func TestGroupDigits(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{12, "12"},
		{999, "999"},
		{1000, "1.000"},
		{12345, "12.345"},
		{999999, "999.999"},
		{1234567, "1.234.567"},
		{1000000000, "1.000.000.000"},
	}
	for _, c := range cases {
		if got := GroupDigits(c.in); got != c.want {
			t.Errorf("GroupDigits(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTruncateTitle(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"this is too long", 7, "this is"},
		{"", 5, ""},
		{"ünïcödé", 3, "ünï"},
	}
	for _, c := range cases {
		got := TruncateTitle(c.in, c.max)
		if got != c.want {
			t.Errorf("TruncateTitle(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
		if len([]rune(got)) > c.max {
			t.Errorf("result %q longer than %d", got, c.max)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		title, path, want string
	}{
		{"Resolved Title", "notes/a.md", "Resolved Title"},
		{"", "notes/untitled.md", "untitled"},
		{"", "plain.md", "plain"},
		{"", "no-extension", "no-extension"},
	}
	for _, c := range cases {
		if got := DisplayName(c.title, c.path); got != c.want {
			t.Errorf("DisplayName(%q, %q) = %q, want %q", c.title, c.path, got, c.want)
		}
	}
}

func TestSortByModifiedDesc_StableAndIdempotent(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	rows := []index.Row{
		{"a.md", t1},
		{"b.md", t2},
		{"c.md", t1}, // same timestamp as a.md, must stay after it
	}
	SortByModifiedDesc(rows, 1)

	order := func() []string {
		var out []string
		for _, r := range rows {
			out = append(out, r[0].(string))
		}
		return out
	}

	want := []string{"b.md", "a.md", "c.md"}
	if !reflect.DeepEqual(order(), want) {
		t.Fatalf("order = %v, want %v", order(), want)
	}

	// Sorting again must not reshuffle ties.
	SortByModifiedDesc(rows, 1)
	if !reflect.DeepEqual(order(), want) {
		t.Errorf("second sort reshuffled: %v", order())
	}
}

func TestResolveModifiedAt(t *testing.T) {
	rows := []index.Row{
		{"a.md", `{"modified":"2024-03-01T12:00:00Z","checksum":"x"}`, "Title"},
	}
	ResolveModifiedAt(rows, 1)

	ts, ok := rows[0][1].(time.Time)
	if !ok {
		t.Fatalf("column not replaced with time.Time: %T", rows[0][1])
	}
	want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("ts = %v, want %v", ts, want)
	}
}

func TestResolveModifiedAt_PanicsOnBadShape(t *testing.T) {
	cases := []index.Row{
		{"a.md", int64(42)},
		{"a.md", "not json at all {"},
	}
	for _, row := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for %v", row[1])
				}
			}()
			ResolveModifiedAt([]index.Row{row}, 1)
		}()
	}
}

func TestFlattenTags(t *testing.T) {
	nested := []index.Row{
		{"go"},
		{"zettel", []any{"go", "deep"}},
		{nil},
		{""},
		{"deep"},
	}
	got := FlattenTags(nested)
	want := []string{"go", "zettel", "deep"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FlattenTags = %v, want %v", got, want)
	}
}

func TestFlattenTags_Empty(t *testing.T) {
	if got := FlattenTags(nil); len(got) != 0 {
		t.Errorf("FlattenTags(nil) = %v, want empty", got)
	}
}
