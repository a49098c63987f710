package chart

import (
	"math"
	"strings"
)

// MonotoneX 单调三次插值（Fritsch–Carlson），点需按 X 升序
//
// 曲线在相邻数据点之间不会越过两端的 Y 值范围。
func MonotoneX(pts []Vec) []Segment {
	n := len(pts)
	if n < 2 {
		return nil
	}
	if n == 2 {
		dx := (pts[1].X - pts[0].X) / 3
		dy := (pts[1].Y - pts[0].Y) / 3
		return []Segment{{
			From: pts[0],
			C1:   Vec{pts[0].X + dx, pts[0].Y + dy},
			C2:   Vec{pts[1].X - dx, pts[1].Y - dy},
			To:   pts[1],
		}}
	}

	t := make([]float64, n)
	for i := 1; i < n-1; i++ {
		t[i] = slope3(pts[i-1], pts[i], pts[i+1])
	}
	t[0] = slope2(pts[0], pts[1], t[1])
	t[n-1] = slope2(pts[n-2], pts[n-1], t[n-2])

	segs := make([]Segment, 0, n-1)
	for i := 0; i < n-1; i++ {
		p0, p1 := pts[i], pts[i+1]
		dx := (p1.X - p0.X) / 3
		segs = append(segs, Segment{
			From: p0,
			C1:   Vec{p0.X + dx, p0.Y + dx*t[i]},
			C2:   Vec{p1.X - dx, p1.Y - dx*t[i+1]},
			To:   p1,
		})
	}
	return segs
}

func sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// slope3 内部点的切线斜率；任一侧水平距离为 0 时取水平切线
func slope3(p0, p1, p2 Vec) float64 {
	h0 := p1.X - p0.X
	h1 := p2.X - p1.X
	if h0 == 0 || h1 == 0 {
		return 0
	}
	s0 := (p1.Y - p0.Y) / h0
	s1 := (p2.Y - p1.Y) / h1
	p := (s0*h1 + s1*h0) / (h0 + h1)
	v := (sign(s0) + sign(s1)) * math.Min(math.Min(math.Abs(s0), math.Abs(s1)), 0.5*math.Abs(p))
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// slope2 端点斜率，由相邻切线推出
func slope2(p0, p1 Vec, t float64) float64 {
	h := p1.X - p0.X
	if h == 0 {
		return t
	}
	return (3*(p1.Y-p0.Y)/h - t) / 2
}

// PathD 生成 SVG path 的 d 属性
func PathD(pts []Vec, segs []Segment) string {
	if len(pts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M")
	b.WriteString(fmtNum(pts[0].X))
	b.WriteString(",")
	b.WriteString(fmtNum(pts[0].Y))
	for _, s := range segs {
		b.WriteString("C")
		b.WriteString(strings.Join([]string{
			fmtNum(s.C1.X), fmtNum(s.C1.Y),
			fmtNum(s.C2.X), fmtNum(s.C2.Y),
			fmtNum(s.To.X), fmtNum(s.To.Y),
		}, ","))
	}
	return b.String()
}

const lengthSteps = 64

// At 段上参数 u∈[0,1] 处的点
func (s Segment) At(u float64) Vec {
	v := 1 - u
	a := v * v * v
	b := 3 * v * v * u
	c := 3 * v * u * u
	d := u * u * u
	return Vec{
		X: a*s.From.X + b*s.C1.X + c*s.C2.X + d*s.To.X,
		Y: a*s.From.Y + b*s.C1.Y + c*s.C2.Y + d*s.To.Y,
	}
}

// PathLength 折线逼近计算曲线总长度
func PathLength(segs []Segment) float64 {
	total := 0.0
	for _, s := range segs {
		prev := s.From
		for i := 1; i <= lengthSteps; i++ {
			p := s.At(float64(i) / lengthSteps)
			total += math.Hypot(p.X-prev.X, p.Y-prev.Y)
			prev = p
		}
	}
	return total
}
