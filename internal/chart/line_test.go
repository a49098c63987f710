package chart

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/esmerado/demographic-analysis-madrid/internal/model"
)

func TestComputeLinePlanSortsByYear(t *testing.T) {
	t.Parallel()

	in := model.ChartInput{
		Title:   "Nacimientos vs Defunciones",
		LabelA:  "Nacimientos",
		LabelB:  "Defunciones",
		SeriesA: model.Series{{Year: "2021", Value: 30}, {Year: "2019", Value: 10}, {Year: "N/D", Value: 99}, {Year: "2020", Value: 20}},
		SeriesB: model.Series{{Year: "2020", Value: 50}},
	}
	plan, err := ComputeLinePlan(in, DefaultLayout())
	if err != nil {
		t.Fatalf("ComputeLinePlan: %v", err)
	}

	dots := plan.MarksOf(MarkCircle, "A")
	if len(dots) != 3 {
		t.Fatalf("non-numeric year should be skipped, got %d dots", len(dots))
	}
	wantYears := []string{"2019", "2020", "2021"}
	for i, d := range dots {
		if d.Year != wantYears[i] {
			t.Fatalf("dot %d: expected year %s, got %s", i, wantYears[i], d.Year)
		}
		if i > 0 && d.CX <= dots[i-1].CX {
			t.Fatalf("dots must be in ascending x order")
		}
	}
	if dots[0].CX != 0 || dots[2].CX != plan.InnerWidth {
		t.Fatalf("x extent should span series A years, got %v..%v", dots[0].CX, dots[2].CX)
	}
	if plan.MaxValue != 50 {
		t.Fatalf("y domain must include series B, got %v", plan.MaxValue)
	}

	line, ok := plan.MarkByID("line-A")
	if !ok {
		t.Fatalf("missing line-A")
	}
	for i := 1; i < len(line.Points); i++ {
		if line.Points[i].X <= line.Points[i-1].X {
			t.Fatalf("path must visit points in ascending year order")
		}
	}
	if !strings.HasPrefix(line.D, "M0,") || strings.Count(line.D, "C") != 2 {
		t.Fatalf("unexpected path: %s", line.D)
	}
	if line.Length <= plan.InnerWidth {
		t.Fatalf("path length should exceed horizontal extent, got %v", line.Length)
	}
	a := line.Animations[0]
	if a.Attr != "stroke-dashoffset" || a.From != line.Length || a.To != 0 || a.DurationMs != 1500 {
		t.Fatalf("unexpected line animation: %+v", a)
	}
	if len(plan.Legend) != 2 || plan.Legend[1].Color != ColorB {
		t.Fatalf("unexpected legend: %+v", plan.Legend)
	}
}

func TestComputeLinePlanSinglePoint(t *testing.T) {
	t.Parallel()

	in := model.ChartInput{SeriesA: model.Series{{Year: "2020", Value: 5}}}
	plan, err := ComputeLinePlan(in, DefaultLayout())
	if err != nil {
		t.Fatalf("ComputeLinePlan: %v", err)
	}
	line, _ := plan.MarkByID("line-A")
	if line.Length != 0 || line.Animations[0].DurationMs != 0 {
		t.Fatalf("single point path should have zero length and duration, got %+v", line)
	}
	if len(plan.MarksOf(MarkCircle, "A")) != 1 {
		t.Fatalf("single point should still get a marker")
	}
	if plan.Legend[0].Label != "Serie A" {
		t.Fatalf("default label expected, got %q", plan.Legend[0].Label)
	}
}

func TestComputeLinePlanYearTicksAreIntegers(t *testing.T) {
	t.Parallel()

	in := model.ChartInput{SeriesA: model.Series{{Year: "2019", Value: 1}, {Year: "2021", Value: 2}}}
	plan, err := ComputeLinePlan(in, DefaultLayout())
	if err != nil {
		t.Fatalf("ComputeLinePlan: %v", err)
	}
	var labels []string
	for _, tk := range plan.Axes[0].Ticks {
		labels = append(labels, tk.Label)
	}
	if strings.Join(labels, ",") != "2019,2020,2021" {
		t.Fatalf("unexpected year ticks: %v", labels)
	}
}

func TestComputeLinePlanSkips(t *testing.T) {
	t.Parallel()

	if _, err := ComputeLinePlan(model.ChartInput{}, DefaultLayout()); !errors.Is(err, model.ErrRenderSkipped) {
		t.Fatalf("expected ErrRenderSkipped, got %v", err)
	}
	in := model.ChartInput{SeriesA: model.Series{{Year: "total", Value: 1}}}
	if _, err := ComputeLinePlan(in, DefaultLayout()); !errors.Is(err, model.ErrRenderSkipped) {
		t.Fatalf("no numeric years should skip, got %v", err)
	}
}

func TestMonotoneXDoesNotOvershoot(t *testing.T) {
	t.Parallel()

	pts := []Vec{{0, 0}, {10, 100}, {20, 100}, {30, 0}, {40, 60}}
	segs := MonotoneX(pts)
	if len(segs) != len(pts)-1 {
		t.Fatalf("expected %d segments, got %d", len(pts)-1, len(segs))
	}
	for i, s := range segs {
		lo := math.Min(s.From.Y, s.To.Y)
		hi := math.Max(s.From.Y, s.To.Y)
		for k := 0; k <= 20; k++ {
			p := s.At(float64(k) / 20)
			if p.Y < lo-1e-9 || p.Y > hi+1e-9 {
				t.Fatalf("segment %d overshoots: y=%v outside [%v,%v]", i, p.Y, lo, hi)
			}
		}
	}
}

func TestPathLengthStraightLine(t *testing.T) {
	t.Parallel()

	segs := MonotoneX([]Vec{{0, 0}, {30, 40}})
	if got := PathLength(segs); math.Abs(got-50) > 1e-6 {
		t.Fatalf("expected length 50, got %v", got)
	}
	if PathLength(MonotoneX([]Vec{{1, 1}})) != 0 {
		t.Fatalf("single point has no length")
	}
}
