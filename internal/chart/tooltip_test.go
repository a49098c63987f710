package chart

import (
	"strings"
	"sync"
	"testing"
)

func TestTooltipShowMoveHide(t *testing.T) {
	t.Parallel()

	tt := NewTooltipController()
	tt.Show("<b>x</b>", 100, 200)
	st := tt.State()
	if !st.Visible || st.HTML != "<b>x</b>" || st.X != 115 || st.Y != 160 {
		t.Fatalf("unexpected state after show: %+v", st)
	}

	tt.Move(10, 50)
	st = tt.State()
	if st.X != 25 || st.Y != 10 {
		t.Fatalf("unexpected position after move: %+v", st)
	}

	tt.Hide()
	if tt.State().Visible {
		t.Fatalf("tooltip should be hidden")
	}
}

func TestSharedTooltipIsSingleton(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	got := make([]*TooltipController, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = SharedTooltip()
		}(i)
	}
	wg.Wait()
	for _, c := range got {
		if c != got[0] {
			t.Fatalf("SharedTooltip returned different instances")
		}
	}
}

func TestTooltipHTMLEscapesLabel(t *testing.T) {
	t.Parallel()

	out := TooltipHTML("2020", "<script>", ColorA, 1234)
	if strings.Contains(out, "<script>") {
		t.Fatalf("label must be escaped: %s", out)
	}
	if !strings.Contains(out, "1,234") || !strings.Contains(out, "Año: 2020") {
		t.Fatalf("unexpected tooltip html: %s", out)
	}
}
