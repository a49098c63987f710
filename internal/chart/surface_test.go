package chart

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/esmerado/demographic-analysis-madrid/internal/model"
)

func newTestSurface() *Surface {
	return NewSurface(DefaultLayout(), NewTooltipController())
}

func TestRenderIsIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestSurface()
	in := comparisonInput()
	if _, err := RenderBarChart(s, in); err != nil {
		t.Fatalf("first render: %v", err)
	}
	first := s.MarkCount()
	if _, err := RenderBarChart(s, in); err != nil {
		t.Fatalf("second render: %v", err)
	}
	if s.MarkCount() != first || first != 4 {
		t.Fatalf("re-render must replace marks, got %d then %d", first, s.MarkCount())
	}

	if _, err := RenderLineChart(s, in); err != nil {
		t.Fatalf("line render: %v", err)
	}
	if s.Plan().Type != model.ChartTypeLine {
		t.Fatalf("line chart should replace bar chart")
	}
	if _, ok := s.Mark("bar-0-A"); ok {
		t.Fatalf("old bars must be removed")
	}
}

func TestRenderSkipsAndClears(t *testing.T) {
	t.Parallel()

	s := newTestSurface()
	if _, err := Render(s, model.ChartTypeBar, comparisonInput()); err != nil {
		t.Fatalf("render: %v", err)
	}
	_, err := Render(s, model.ChartTypeBar, model.ChartInput{Title: "vacío"})
	if !errors.Is(err, model.ErrRenderSkipped) {
		t.Fatalf("expected ErrRenderSkipped, got %v", err)
	}
	if s.MarkCount() != 0 || s.Plan() != nil {
		t.Fatalf("skipped render should leave an empty surface")
	}
	if _, err := RenderBarChart(nil, comparisonInput()); !errors.Is(err, model.ErrRenderSkipped) {
		t.Fatalf("nil surface should skip, got %v", err)
	}
}

func TestSurfaceHoverTooltip(t *testing.T) {
	t.Parallel()

	s := newTestSurface()
	in := model.ChartInput{LabelA: "Hombres", SeriesA: model.Series{{Year: "2020", Value: 1234}}}
	if _, err := RenderBarChart(s, in); err != nil {
		t.Fatalf("render: %v", err)
	}

	if !s.Dispatch(PointerEvent{Kind: PointerEnter, MarkID: "bar-0-A", PageX: 300, PageY: 400}) {
		t.Fatalf("enter should be handled")
	}
	st := s.Tooltip().State()
	if !st.Visible || !strings.Contains(st.HTML, "1,234") || st.X != 315 || st.Y != 360 {
		t.Fatalf("unexpected tooltip after enter: %+v", st)
	}
	m, _ := s.Mark("bar-0-A")
	if m.Attrs["opacity"] != 0.8 || !m.Hovered {
		t.Fatalf("hovered bar should dim to 0.8, got %v", m.Attrs["opacity"])
	}

	s.Dispatch(PointerEvent{Kind: PointerMove, MarkID: "bar-0-A", PageX: 310, PageY: 410})
	if st := s.Tooltip().State(); st.X != 325 || st.Y != 370 {
		t.Fatalf("tooltip should follow pointer, got %+v", st)
	}

	s.Dispatch(PointerEvent{Kind: PointerLeave, MarkID: "bar-0-A"})
	if s.Tooltip().State().Visible {
		t.Fatalf("tooltip should be hidden after leave")
	}
	m, _ = s.Mark("bar-0-A")
	if m.Attrs["opacity"] != 1 {
		t.Fatalf("opacity should be restored")
	}

	if s.Dispatch(PointerEvent{Kind: PointerEnter, MarkID: "nope"}) {
		t.Fatalf("unknown mark must be ignored")
	}
}

func TestSurfaceClearHidesHoveredTooltip(t *testing.T) {
	t.Parallel()

	s := newTestSurface()
	if _, err := RenderBarChart(s, comparisonInput()); err != nil {
		t.Fatalf("render: %v", err)
	}
	s.Dispatch(PointerEvent{Kind: PointerEnter, MarkID: "bar-0-A"})
	gen := s.Generation()
	s.Clear()
	if s.Tooltip().State().Visible {
		t.Fatalf("clearing a hovered chart should hide the tooltip")
	}
	if s.Generation() != gen+1 {
		t.Fatalf("generation should advance on clear")
	}
}

func TestSurfaceAdvanceAnimations(t *testing.T) {
	t.Parallel()

	s := newTestSurface()
	if _, err := RenderBarChart(s, comparisonInput()); err != nil {
		t.Fatalf("render: %v", err)
	}
	final, _ := s.Plan().MarkByID("bar-1-A")

	m, _ := s.Mark("bar-1-A")
	if m.Attrs["height"] != 0 || m.Attrs["y"] != s.Plan().InnerHeight {
		t.Fatalf("bars should start collapsed at the baseline, got %v", m.Attrs)
	}

	if left := s.Advance(500 * time.Millisecond); left == 0 {
		t.Fatalf("animations should still be running at 500ms")
	}
	m, _ = s.Mark("bar-1-A")
	if h := m.Attrs["height"]; h <= 0 || h >= final.Height {
		t.Fatalf("height should be mid-transition, got %v", h)
	}

	if left := s.Advance(600 * time.Millisecond); left != 0 {
		t.Fatalf("all animations should be done, %d left", left)
	}
	m, _ = s.Mark("bar-1-A")
	if m.Attrs["height"] != final.Height || m.Attrs["y"] != final.Y {
		t.Fatalf("final geometry not reached: %v", m.Attrs)
	}
}

func TestSchedulerDropsMissingTargets(t *testing.T) {
	t.Parallel()

	var sch Scheduler
	sch.Schedule("gone", Animation{Attr: "height", From: 0, To: 10, DurationMs: 1000})
	sch.Schedule("here", Animation{Attr: "height", From: 0, To: 10, DurationMs: 1000, Easing: EaseLinear})

	var got float64
	left := sch.Advance(250*time.Millisecond, func(id, attr string, v float64) bool {
		if id == "gone" {
			return false
		}
		got = v
		return true
	})
	if left != 1 || sch.Pending() != 1 {
		t.Fatalf("missing target should be dropped, %d left", left)
	}
	if got != 2.5 {
		t.Fatalf("linear easing at 25%% should give 2.5, got %v", got)
	}
}

func TestEasingEndpoints(t *testing.T) {
	t.Parallel()

	for _, e := range []Easing{EaseCubicInOut, EaseLinear} {
		if e.At(0) != 0 || e.At(1) != 1 {
			t.Fatalf("%s must map 0→0 and 1→1", e)
		}
	}
	if EaseCubicInOut.At(0.5) != 0.5 {
		t.Fatalf("cubic-in-out should be symmetric")
	}
}
