package dataset

import (
	"sync"

	"github.com/esmerado/demographic-analysis-madrid/internal/model"
	"github.com/esmerado/demographic-analysis-madrid/internal/parser"
)

// MemoryStore 当前会话的数据集（仅在加载成功后整体替换）
type MemoryStore struct {
	mu     sync.RWMutex
	groups model.Dataset
	report *parser.LoadReport
	loaded bool
}

// NewMemoryStore 创建空存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{groups: model.Dataset{}}
}

// Replace 整体替换数据集
func (s *MemoryStore) Replace(groups model.Dataset, report *parser.LoadReport) {
	if groups == nil {
		groups = model.Dataset{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = groups
	s.report = report
	s.loaded = true
}

// Dataset 返回当前数据集
func (s *MemoryStore) Dataset() model.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groups
}

// Report 返回最近一次成功加载的报告
func (s *MemoryStore) Report() *parser.LoadReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Loaded 是否已经成功加载过数据集
func (s *MemoryStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// FindByConcept 按 concept 精确查找
func (s *MemoryStore) FindByConcept(name string) []model.Record {
	return s.Dataset().FindByConcept(name)
}
