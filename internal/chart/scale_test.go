package chart

import (
	"math"
	"testing"
)

func TestBandScaleDedupAndPositions(t *testing.T) {
	t.Parallel()

	s := NewBandScale([]string{"a", "b", "a"}, 0, 100, 0)
	if got := s.Domain(); len(got) != 2 {
		t.Fatalf("expected 2 distinct labels, got %v", got)
	}
	if s.Step() != 50 || s.Bandwidth() != 50 {
		t.Fatalf("unexpected step/bandwidth: %v/%v", s.Step(), s.Bandwidth())
	}
	pos, ok := s.Position("b")
	if !ok || pos != 50 {
		t.Fatalf("expected b at 50, got %v (%v)", pos, ok)
	}
	if _, ok := s.Position("c"); ok {
		t.Fatalf("unknown label must not resolve")
	}
}

func TestBandScalePaddingKeepsBandsInsideRange(t *testing.T) {
	t.Parallel()

	s := NewBandScale([]string{"2019", "2020", "2021"}, 0, 700, 0.2)
	first, _ := s.Position("2019")
	last, _ := s.Position("2021")
	if first <= 0 {
		t.Fatalf("outer padding expected, first band starts at %v", first)
	}
	if end := last + s.Bandwidth(); end >= 700 {
		t.Fatalf("last band overflows range: %v", end)
	}
	if math.Abs(s.Bandwidth()-s.Step()*0.8) > 1e-9 {
		t.Fatalf("bandwidth should be 80%% of step")
	}
}

func TestLinearScaleNice(t *testing.T) {
	t.Parallel()

	s := NewLinearScale(0, 1234, 280, 0).Nice(10)
	if d0, d1 := s.Domain(); d0 != 0 || d1 != 1300 {
		t.Fatalf("expected [0,1300], got [%v,%v]", d0, d1)
	}
	if got := s.Map(1300); got != 0 {
		t.Fatalf("top of domain should map to 0, got %v", got)
	}
	if got := s.Map(0); got != 280 {
		t.Fatalf("baseline should map to 280, got %v", got)
	}
}

func TestLinearScaleDegenerateDomain(t *testing.T) {
	t.Parallel()

	s := NewLinearScale(0, 0, 280, 0).Nice(10)
	if got := s.Map(0); got != 280 {
		t.Fatalf("degenerate domain should map to range start, got %v", got)
	}
	if ticks := s.Ticks(8); len(ticks) != 1 || ticks[0] != 0 {
		t.Fatalf("expected single tick at 0, got %v", ticks)
	}
}

func TestLinearScaleTicks(t *testing.T) {
	t.Parallel()

	ticks := NewLinearScale(0, 20, 0, 1).Ticks(8)
	if len(ticks) != 11 || ticks[0] != 0 || ticks[10] != 20 {
		t.Fatalf("unexpected ticks: %v", ticks)
	}
	frac := NewLinearScale(0, 1, 0, 1).Ticks(5)
	if len(frac) != 6 || frac[1] != 0.2 {
		t.Fatalf("unexpected fractional ticks: %v", frac)
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		0:       "0",
		1234:    "1,234",
		1234567: "1,234,567",
		1234.5:  "1,234.5",
		12.3456: "12.346",
	}
	for in, want := range cases {
		if got := FormatValue(in); got != want {
			t.Fatalf("FormatValue(%v) = %q, want %q", in, got, want)
		}
	}
	if got := FormatYear(2021); got != "2021" {
		t.Fatalf("year must not be grouped, got %q", got)
	}
}
