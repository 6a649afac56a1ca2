package table

import (
	"strings"
	"testing"
)

func TestAppend_RejectsWrongArity(t *testing.T) {
	tbl := New([]string{"a", "b"})
	if err := tbl.Append([]Value{Int(1)}); err == nil {
		t.Fatalf("expected arity error for short row")
	}
	if err := tbl.Append([]Value{Int(1), Int(2), Int(3)}); err == nil {
		t.Fatalf("expected arity error for long row")
	}
	if err := tbl.Append([]Value{Int(1), Int(2)}); err != nil {
		t.Fatalf("valid row rejected: %v", err)
	}
}

func TestWriteCSV_HeaderRowsAndNullEncoding(t *testing.T) {
	tbl := New([]string{"band_1", "polygon_id", "class"})
	mustAppend(t, tbl, []Value{Float(10.5), Int(1), String("forest")})
	mustAppend(t, tbl, []Value{Null(), Int(1), String("forest")})

	var sb strings.Builder
	if err := tbl.WriteCSV(&sb); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "band_1,polygon_id,class\n10.5,1,forest\n,1,forest\n"
	if sb.String() != want {
		t.Fatalf("csv mismatch:\ngot:  %q\nwant: %q", sb.String(), want)
	}
}

func TestCell_LooksUpByColumnName(t *testing.T) {
	tbl := New([]string{"band_1", "polygon_id"})
	mustAppend(t, tbl, []Value{Float(7), Int(3)})

	v, ok := tbl.Cell(0, "polygon_id")
	if !ok || v.Int() != 3 {
		t.Fatalf("Cell(polygon_id) = %v,%v, want 3,true", v, ok)
	}
	if _, ok := tbl.Cell(0, "nope"); ok {
		t.Fatalf("Cell on unknown column must report false")
	}
}

func TestFingerprint_SensitiveToContentNotIdentity(t *testing.T) {
	mk := func(v float64) *Table {
		tbl := New([]string{"band_1"})
		mustAppend(t, tbl, []Value{Float(v)})
		return tbl
	}
	if mk(1).Fingerprint() != mk(1).Fingerprint() {
		t.Fatalf("identical tables must share a fingerprint")
	}
	if mk(1).Fingerprint() == mk(2).Fingerprint() {
		t.Fatalf("different content must change the fingerprint")
	}

	a := New([]string{"x"})
	b := New([]string{"y"})
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatalf("different schemas must change the fingerprint")
	}
}

func TestFingerprint_DistinguishesKinds(t *testing.T) {
	mkInt := New([]string{"c"})
	mustAppend(t, mkInt, []Value{Int(1)})
	mkFloat := New([]string{"c"})
	mustAppend(t, mkFloat, []Value{Float(1)})
	if mkInt.Fingerprint() == mkFloat.Fingerprint() {
		t.Fatalf("int and float cells of equal value must not collide")
	}
}

func TestValue_EncodeAndEqual(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null(), ""},
		{Int(-3), "-3"},
		{Float(0.25), "0.25"},
		{Float(9999), "9999"},
		{String("forest"), "forest"},
	}
	for _, c := range cases {
		if got := c.v.Encode(); got != c.want {
			t.Fatalf("Encode(%v) = %q, want %q", c.v, got, c.want)
		}
	}

	if !Int(2).Equal(Int(2)) || Int(2).Equal(Float(2)) {
		t.Fatalf("Equal must compare kind and payload")
	}
	if !Null().Equal(Null()) {
		t.Fatalf("nulls must be equal")
	}
}

func mustAppend(t *testing.T, tbl *Table, row []Value) {
	t.Helper()
	if err := tbl.Append(row); err != nil {
		t.Fatalf("Append: %v", err)
	}
}
