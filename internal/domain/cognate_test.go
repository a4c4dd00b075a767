package domain

import "testing"

func TestNewEdge_Canonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		x, y int64
		want Edge
	}{
		{"already ordered", 17, 42, Edge{A: 17, B: 42}},
		{"reversed", 42, 17, Edge{A: 17, B: 42}},
		{"self pair", 5, 5, Edge{A: 5, B: 5}},
		{"numeric not lexical", 9, 10, Edge{A: 9, B: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NewEdge(tt.x, tt.y); got != tt.want {
				t.Errorf("NewEdge(%d, %d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
			if NewEdge(tt.x, tt.y) != NewEdge(tt.y, tt.x) {
				t.Errorf("NewEdge is order dependent for (%d, %d)", tt.x, tt.y)
			}
		})
	}
}

func TestNormalizeTranslit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want *string
	}{
		{"", nil},
		{"   ", nil},
		{"\t\n", nil},
		{" kasa ", ptr("kasa")},
		{"kasa\n", ptr("kasa")},
	}

	for _, tt := range tests {
		got := NormalizeTranslit(tt.raw)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("NormalizeTranslit(%q) = %q, want nil", tt.raw, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("NormalizeTranslit(%q) = %v, want %q", tt.raw, got, *tt.want)
		}
	}
}

func TestWordEntry_TupleAndKey(t *testing.T) {
	t.Parallel()

	withTranslit := WordEntry{ConceptID: "C1", Language: "rus", Word: "дом", Translit: ptr("dom")}
	without := WordEntry{ConceptID: "C1", Language: "rus", Word: "дом"}

	if without.Tuple().Translit != NullSentinel {
		t.Errorf("nil translit tuple = %q, want %q", without.Tuple().Translit, NullSentinel)
	}
	if withTranslit.Tuple() == without.Tuple() {
		t.Error("tuples differing in translit must not be equal")
	}
	if withTranslit.Key() != without.Key() {
		t.Error("keys must ignore translit")
	}
}

func TestSliceSource(t *testing.T) {
	t.Parallel()

	src := NewSliceSource([][]any{{int64(1)}, {int64(2)}})
	var got []any
	for src.Next() {
		v, err := src.Values()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v[0])
	}
	if len(got) != 2 || got[0] != int64(1) || got[1] != int64(2) {
		t.Errorf("got %v", got)
	}
	if src.Next() {
		t.Error("Next after exhaustion must be false")
	}
}

func ptr(s string) *string { return &s }
