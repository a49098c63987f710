package chart

import "math"

// BandScale 离散类别到连续像素区间的映射（与 d3.scaleBand 一致，align=0.5）
type BandScale struct {
	domain       []string
	index        map[string]int
	r0, r1       float64
	paddingInner float64
	paddingOuter float64
	step         float64
	bandwidth    float64
	start        float64
}

// NewBandScale 创建 band scale，padding 同时作用于内外间距
func NewBandScale(domain []string, r0, r1, padding float64) *BandScale {
	s := &BandScale{
		index:        make(map[string]int, len(domain)),
		r0:           r0,
		r1:           r1,
		paddingInner: math.Min(1, padding),
		paddingOuter: padding,
	}
	for _, d := range domain {
		if _, ok := s.index[d]; ok {
			continue
		}
		s.index[d] = len(s.domain)
		s.domain = append(s.domain, d)
	}
	s.rescale()
	return s
}

func (s *BandScale) rescale() {
	n := float64(len(s.domain))
	start, stop := s.r0, s.r1
	if stop < start {
		start, stop = stop, start
	}
	s.step = (stop - start) / math.Max(1, n-s.paddingInner+s.paddingOuter*2)
	s.start = start + (stop-start-s.step*(n-s.paddingInner))*0.5
	s.bandwidth = s.step * (1 - s.paddingInner)
}

// Domain 去重后的类别
func (s *BandScale) Domain() []string { return s.domain }

// Step 相邻类别起点之间的距离
func (s *BandScale) Step() float64 { return s.step }

// Bandwidth 每个类别区间的宽度
func (s *BandScale) Bandwidth() float64 { return s.bandwidth }

// Position 返回类别区间的起点
func (s *BandScale) Position(label string) (float64, bool) {
	i, ok := s.index[label]
	if !ok {
		return 0, false
	}
	return s.start + s.step*float64(i), true
}

// LinearScale 连续线性映射
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinearScale 创建线性映射；range 可以倒置（例如 [height, 0]）
func NewLinearScale(d0, d1, r0, r1 float64) *LinearScale {
	return &LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain 当前定义域
func (s *LinearScale) Domain() (float64, float64) { return s.d0, s.d1 }

// Map 把定义域中的值映射到值域；定义域退化时映射到值域起点
func (s *LinearScale) Map(v float64) float64 {
	span := s.d1 - s.d0
	if span == 0 || math.IsNaN(span) {
		return s.r0
	}
	return s.r0 + (v-s.d0)/span*(s.r1-s.r0)
}

// Nice 把定义域扩展到整齐的刻度边界
func (s *LinearScale) Nice(count int) *LinearScale {
	start, stop := s.d0, s.d1
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	prestep := math.NaN()
	for i := 0; i < 10; i++ {
		step := tickIncrement(start, stop, count)
		if step == prestep {
			break
		}
		if step > 0 {
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		} else if step < 0 {
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		} else {
			break
		}
		prestep = step
	}
	if reverse {
		s.d0, s.d1 = stop, start
	} else {
		s.d0, s.d1 = start, stop
	}
	return s
}

// Ticks 生成约 count 个 1/2/5×10^k 刻度
func (s *LinearScale) Ticks(count int) []float64 {
	start, stop := s.d0, s.d1
	if stop < start {
		start, stop = stop, start
	}
	return ticks(start, stop, count)
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

func tickFactor(err float64) float64 {
	switch {
	case err >= e10:
		return 10
	case err >= e5:
		return 5
	case err >= e2:
		return 2
	default:
		return 1
	}
}

// tickIncrement 正数表示步长，负数表示步长的倒数（小数步长时避免浮点误差）
func tickIncrement(start, stop float64, count int) float64 {
	if count <= 0 || stop <= start {
		return 0
	}
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	factor := tickFactor(step / math.Pow(10, power))
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

func ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	factor := tickFactor(step / math.Pow(10, power))

	var out []float64
	if power < 0 {
		inc := math.Pow(10, -power) / factor
		i1 := math.Round(start * inc)
		i2 := math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		for i := i1; i <= i2; i++ {
			out = append(out, i/inc)
		}
		return out
	}
	inc := math.Pow(10, power) * factor
	i1 := math.Round(start / inc)
	i2 := math.Round(stop / inc)
	if i1*inc < start {
		i1++
	}
	if i2*inc > stop {
		i2--
	}
	for i := i1; i <= i2; i++ {
		out = append(out, i*inc)
	}
	return out
}
