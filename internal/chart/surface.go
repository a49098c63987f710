package chart

import (
	"sync"
	"time"
)

// PointerKind 指针事件类型
type PointerKind int

const (
	PointerEnter PointerKind = iota
	PointerMove
	PointerLeave
)

// PointerEvent 作用在某个图元上的指针事件，PageX/PageY 为页面坐标
type PointerEvent struct {
	Kind   PointerKind
	MarkID string
	PageX  float64
	PageY  float64
}

// MarkState 图元当前的可变属性
type MarkState struct {
	Mark
	Attrs   map[string]float64
	Hovered bool
}

type liveMark struct {
	mark    Mark
	attrs   map[string]float64
	hovered bool
}

// Surface 承载当前 DrawPlan 的绘图面
//
// 每次 Apply 都会先清空旧图元，绘图面上任何时候只有一个图表。
type Surface struct {
	mu         sync.Mutex
	layout     Layout
	tooltip    *TooltipController
	plan       *DrawPlan
	marks      map[string]*liveMark
	generation uint64
	scheduler  Scheduler
}

// NewSurface 创建绘图面；tooltip 为 nil 时使用进程共享的实例
func NewSurface(layout Layout, tooltip *TooltipController) *Surface {
	if tooltip == nil {
		tooltip = SharedTooltip()
	}
	return &Surface{
		layout:  layout,
		tooltip: tooltip,
		marks:   make(map[string]*liveMark),
	}
}

// Layout 绘图面尺寸
func (s *Surface) Layout() Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}

// Tooltip 绘图面使用的提示控制器
func (s *Surface) Tooltip() *TooltipController { return s.tooltip }

// Apply 替换当前图表并启动入场动画，返回写入的计划
func (s *Surface) Apply(plan *DrawPlan) *DrawPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	if plan == nil {
		return nil
	}
	s.plan = plan
	for _, m := range plan.Marks {
		lm := &liveMark{mark: m, attrs: m.attrs()}
		for _, a := range m.Animations {
			lm.attrs[a.Attr] = a.From
			s.scheduler.Schedule(m.ID, a)
		}
		s.marks[m.ID] = lm
	}
	return plan
}

// Clear 移除全部图元
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Surface) clearLocked() {
	for _, m := range s.marks {
		if m.hovered {
			s.tooltip.Hide()
			break
		}
	}
	s.scheduler.Reset()
	s.marks = make(map[string]*liveMark)
	s.plan = nil
	s.generation++
}

// Generation 每次 Apply/Clear 递增
func (s *Surface) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Plan 当前图表，未渲染时为 nil
func (s *Surface) Plan() *DrawPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// MarkCount 当前图元数量
func (s *Surface) MarkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.marks)
}

// Mark 图元状态快照
func (s *Surface) Mark(id string) (MarkState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.marks[id]
	if !ok {
		return MarkState{}, false
	}
	attrs := make(map[string]float64, len(m.attrs))
	for k, v := range m.attrs {
		attrs[k] = v
	}
	return MarkState{Mark: m.mark, Attrs: attrs, Hovered: m.hovered}, true
}

// Dispatch 处理指针事件，未知图元返回 false
func (s *Surface) Dispatch(ev PointerEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.marks[ev.MarkID]
	if !ok {
		return false
	}
	switch ev.Kind {
	case PointerEnter:
		m.hovered = true
		if m.mark.HoverOpacity > 0 {
			m.attrs["opacity"] = m.mark.HoverOpacity
		}
		if m.mark.Tooltip != "" {
			s.tooltip.Show(m.mark.Tooltip, ev.PageX, ev.PageY)
		}
	case PointerMove:
		if m.hovered && m.mark.Tooltip != "" {
			s.tooltip.Move(ev.PageX, ev.PageY)
		}
	case PointerLeave:
		m.hovered = false
		m.attrs["opacity"] = 1
		s.tooltip.Hide()
	default:
		return false
	}
	return true
}

// Advance 推进动画，返回仍在进行的动画数量
func (s *Surface) Advance(d time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduler.Advance(d, func(id, attr string, v float64) bool {
		m, ok := s.marks[id]
		if !ok {
			return false
		}
		m.attrs[attr] = v
		return true
	})
}

// Pending 尚未完成的动画数量
func (s *Surface) Pending() int {
	return s.scheduler.Pending()
}
