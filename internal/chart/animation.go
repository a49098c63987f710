package chart

import (
	"math"
	"sync"
	"time"
)

// Easing 缓动函数名
type Easing string

const (
	EaseCubicInOut Easing = "cubic-in-out"
	EaseLinear     Easing = "linear"
)

// At 把归一化时间 t∈[0,1] 映射为进度
func (e Easing) At(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	if e == EaseLinear {
		return t
	}
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// Animation 单个属性的过渡
type Animation struct {
	Attr       string  `json:"attr"`
	From       float64 `json:"from"`
	To         float64 `json:"to"`
	DurationMs int     `json:"durationMs"`
	Easing     Easing  `json:"easing"`
}

// Duration 过渡时长
func (a Animation) Duration() time.Duration {
	return time.Duration(a.DurationMs) * time.Millisecond
}

// ValueAt 返回经过 elapsed 后的属性值
func (a Animation) ValueAt(elapsed time.Duration) float64 {
	if a.DurationMs <= 0 || elapsed >= a.Duration() {
		return a.To
	}
	if elapsed <= 0 {
		return a.From
	}
	p := a.Easing.At(float64(elapsed) / float64(a.Duration()))
	return a.From + (a.To-a.From)*p
}

// ApplyFunc 把动画值写回目标；目标不存在时返回 false
type ApplyFunc func(markID, attr string, value float64) bool

type scheduled struct {
	markID string
	anim   Animation
}

// Scheduler 按经过的时间推进动画
type Scheduler struct {
	mu      sync.Mutex
	elapsed time.Duration
	entries []scheduled
}

// Schedule 登记一个动画，从当前时刻开始计时
func (s *Scheduler) Schedule(markID string, a Animation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		s.elapsed = 0
	}
	s.entries = append(s.entries, scheduled{markID: markID, anim: a})
}

// Advance 推进 d 并写回当前值，返回仍在进行的动画数量
//
// 目标已被移除的动画直接丢弃。
func (s *Scheduler) Advance(d time.Duration, apply ApplyFunc) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elapsed += d
	kept := s.entries[:0]
	for _, e := range s.entries {
		if !apply(e.markID, e.anim.Attr, e.anim.ValueAt(s.elapsed)) {
			continue
		}
		if s.elapsed < e.anim.Duration() {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return len(kept)
}

// Pending 尚未完成的动画数量
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Reset 取消所有动画
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.elapsed = 0
}
