package chart

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strconv"
)

const svgFont = "system-ui, -apple-system, 'Segoe UI', sans-serif"

// WriteSVG 输出独立 SVG，图元携带 data-tooltip，动画以 SMIL <animate> 表达
func WriteSVG(w io.Writer, plan *DrawPlan) error {
	if plan == nil {
		return fmt.Errorf("write svg: %w", errNoPlan)
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" class="chart chart-%s" width="%s" height="%s" viewBox="0 0 %s %s" font-family="%s" font-size="10">`,
		plan.Type, fmtNum(plan.Width), fmtNum(plan.Height), fmtNum(plan.Width), fmtNum(plan.Height), svgFont)
	b.WriteString("\n")
	if plan.Title != "" {
		fmt.Fprintf(&b, `<title>%s</title>`+"\n", html.EscapeString(plan.Title))
		fmt.Fprintf(&b, `<text class="chart-title" x="%s" y="24" text-anchor="middle" font-size="16" font-weight="600">%s</text>`+"\n",
			fmtNum(plan.Width/2), html.EscapeString(plan.Title))
	}
	fmt.Fprintf(&b, `<g transform="translate(%s,%s)">`+"\n", fmtNum(plan.Margin.Left), fmtNum(plan.Margin.Top))
	for _, a := range plan.Axes {
		writeAxis(&b, a)
	}
	for _, m := range plan.Marks {
		writeMark(&b, m)
	}
	b.WriteString("</g>\n")
	writeLegend(&b, plan)
	b.WriteString("</svg>\n")
	_, err := w.Write(b.Bytes())
	return err
}

func writeAxis(b *bytes.Buffer, a Axis) {
	switch a.Orient {
	case AxisBottom:
		fmt.Fprintf(b, `<g class="axis axis-bottom" transform="translate(0,%s)">`, fmtNum(a.Offset))
		fmt.Fprintf(b, `<path class="domain" stroke="currentColor" fill="none" d="M0,6V0H%sV6"/>`, fmtNum(a.Length))
		for _, t := range a.Ticks {
			fmt.Fprintf(b, `<g class="tick" transform="translate(%s,0)"><line stroke="currentColor" y2="6"/>`, fmtNum(t.Pos))
			if a.LabelRotate != 0 {
				fmt.Fprintf(b, `<text fill="currentColor" y="9" dy="0.71em" text-anchor="end" transform="translate(-10,0)rotate(%s)">%s</text></g>`,
					fmtNum(a.LabelRotate), html.EscapeString(t.Label))
			} else {
				fmt.Fprintf(b, `<text fill="currentColor" y="9" dy="0.71em" text-anchor="middle">%s</text></g>`, html.EscapeString(t.Label))
			}
		}
	case AxisLeft:
		fmt.Fprintf(b, `<g class="axis axis-left">`)
		fmt.Fprintf(b, `<path class="domain" stroke="currentColor" fill="none" d="M-6,%sH0V0H-6"/>`, fmtNum(a.Length))
		for _, t := range a.Ticks {
			fmt.Fprintf(b, `<g class="tick" transform="translate(0,%s)"><line stroke="currentColor" x2="-6"/><text fill="currentColor" x="-9" dy="0.32em" text-anchor="end">%s</text></g>`,
				fmtNum(t.Pos), html.EscapeString(t.Label))
		}
	}
	b.WriteString("</g>\n")
}

func writeMark(b *bytes.Buffer, m Mark) {
	common := fmt.Sprintf(`id="%s" class="mark mark-%s series-%s" data-series="%s"`, m.ID, m.Kind, m.Series, m.Series)
	if m.Tooltip != "" {
		common += fmt.Sprintf(` data-tooltip="%s"`, html.EscapeString(m.Tooltip))
	}
	if m.HoverOpacity > 0 {
		common += ` data-hover-opacity="` + fmtNum(m.HoverOpacity) + `"`
	}
	switch m.Kind {
	case MarkRect:
		fmt.Fprintf(b, `<rect %s x="%s" y="%s" width="%s" height="%s" fill="%s" cursor="pointer">`,
			common, fmtNum(m.X), fmtNum(m.Y), fmtNum(m.Width), fmtNum(m.Height), m.Fill)
		writeAnimations(b, m.Animations)
		b.WriteString("</rect>\n")
	case MarkPath:
		l := fmtNum(m.Length)
		fmt.Fprintf(b, `<path %s d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-dasharray="%s %s" stroke-dashoffset="0">`,
			common, m.D, m.Stroke, fmtNum(m.StrokeWidth), l, l)
		writeAnimations(b, m.Animations)
		b.WriteString("</path>\n")
	case MarkCircle:
		fmt.Fprintf(b, `<circle %s cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%s" cursor="pointer"/>`+"\n",
			common, fmtNum(m.CX), fmtNum(m.CY), fmtNum(m.R), m.Fill, m.Stroke, fmtNum(m.StrokeWidth))
	}
}

// keySplines 近似 cubic-in-out
const cubicInOutSpline = "0.645 0.045 0.355 1"

func writeAnimations(b *bytes.Buffer, anims []Animation) {
	for _, a := range anims {
		if a.DurationMs <= 0 {
			continue
		}
		fmt.Fprintf(b, `<animate attributeName="%s" from="%s" to="%s" dur="%sms" fill="freeze"`,
			a.Attr, fmtNum(a.From), fmtNum(a.To), strconv.Itoa(a.DurationMs))
		if a.Easing == EaseLinear {
			b.WriteString(` calcMode="linear"/>`)
		} else {
			fmt.Fprintf(b, ` calcMode="spline" keyTimes="0;1" keySplines="%s"/>`, cubicInOutSpline)
		}
	}
}

func writeLegend(b *bytes.Buffer, plan *DrawPlan) {
	if len(plan.Legend) == 0 {
		return
	}
	y := plan.Height - 12
	x := plan.Margin.Left
	b.WriteString(`<g class="legend" font-size="12">`)
	for _, e := range plan.Legend {
		fmt.Fprintf(b, `<g class="legend-item" transform="translate(%s,%s)"><text fill="%s">%s</text><text x="16" fill="currentColor">%s</text></g>`,
			fmtNum(x), fmtNum(y), e.Color, e.Symbol, html.EscapeString(e.Label))
		x += 40 + float64(len([]rune(e.Label)))*7
	}
	b.WriteString("</g>\n")
}
