package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/esmerado/demographic-analysis-madrid/internal/model"
	"github.com/esmerado/demographic-analysis-madrid/internal/parser"
	"github.com/esmerado/demographic-analysis-madrid/internal/store"
)

// Coordinator 数据集加载协调器
type Coordinator struct {
	store    *store.Store
	datasets *MemoryStore
	client   *http.Client

	// 同一时刻只允许一次加载
	mu sync.Mutex
}

// NewCoordinator 创建加载协调器；st 可以为 nil（不记录导入日志）
func NewCoordinator(st *store.Store, datasets *MemoryStore, client *http.Client) *Coordinator {
	return &Coordinator{
		store:    st,
		datasets: datasets,
		client:   client,
	}
}

// Options 加载选项
type Options struct {
	Source   string
	Encoding string
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`      // start/fetched/grouped/done/error
	Message   string      `json:"message"`   // 事件消息
	Data      interface{} `json:"data"`      // 附加数据
	Timestamp time.Time   `json:"timestamp"` // 时间戳
}

// Load 在后台执行加载，返回进度通道
func (c *Coordinator) Load(ctx context.Context, opts Options) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 16)

	go func() {
		defer close(progressChan)
		_, _ = c.doLoad(ctx, opts, progressChan)
	}()

	return progressChan
}

// LoadSync 同步加载，供启动流程与命令行使用
func (c *Coordinator) LoadSync(ctx context.Context, opts Options) (*parser.LoadReport, error) {
	return c.doLoad(ctx, opts, nil)
}

// doLoad 执行加载逻辑；错误只在这里记录一次日志
func (c *Coordinator) doLoad(ctx context.Context, opts Options, progressChan chan ProgressEvent) (*parser.LoadReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	runID := uuid.New().String()
	c.sendProgress(ctx, progressChan, ProgressEvent{
		Type:    "start",
		Message: "开始加载数据集",
		Data: map[string]string{
			"runId":  runID,
			"source": opts.Source,
		},
		Timestamp: time.Now(),
	})

	logID := c.createLog(runID, opts)

	buf, err := Fetch(ctx, opts.Source, c.client)
	if err != nil {
		return nil, c.fail(ctx, progressChan, logID, store.ImportResult{}, err)
	}
	sum := sha256.Sum256(buf)
	result := store.ImportResult{
		FileSize: int64(len(buf)),
		FileHash: hex.EncodeToString(sum[:]),
	}
	c.sendProgress(ctx, progressChan, ProgressEvent{
		Type:      "fetched",
		Message:   fmt.Sprintf("已读取 %d 字节", len(buf)),
		Data:      map[string]int{"bytes": len(buf)},
		Timestamp: time.Now(),
	})

	groups, report, err := Build(buf, opts.Encoding)
	if err != nil {
		return nil, c.fail(ctx, progressChan, logID, result, err)
	}
	report.Source = opts.Source
	if len(report.Missing) > 0 {
		log.Printf("dataset %s: unresolved columns %v (header %v)", opts.Source, report.Missing, report.Columns)
	}
	c.sendProgress(ctx, progressChan, ProgressEvent{
		Type:      "grouped",
		Message:   fmt.Sprintf("共 %d 个分组，%d 条记录", len(groups), groups.RecordCount()),
		Data:      report,
		Timestamp: time.Now(),
	})

	c.datasets.Replace(groups, report)

	result.TotalRows = report.Stats.TotalRows
	result.ImportedRows = report.Stats.KeptRows
	result.SkippedRows = report.Stats.DroppedTotal + report.Stats.DroppedEmpty
	result.Concepts = report.Concepts
	result.Status = "success"
	c.updateLog(logID, result)

	c.sendProgress(ctx, progressChan, ProgressEvent{
		Type:      "done",
		Message:   "数据集加载完成",
		Data:      report,
		Timestamp: time.Now(),
	})
	return report, nil
}

func (c *Coordinator) fail(ctx context.Context, progressChan chan ProgressEvent, logID int64, result store.ImportResult, err error) error {
	kind := "load"
	var fe *model.FetchError
	var de *model.DecodeError
	switch {
	case errors.As(err, &fe):
		kind = "fetch"
	case errors.As(err, &de):
		kind = "decode"
	}
	log.Printf("dataset %s failed: %v", kind, err)

	result.Status = "error"
	result.ErrorMessage = err.Error()
	c.updateLog(logID, result)

	c.sendProgress(ctx, progressChan, ProgressEvent{
		Type:      "error",
		Message:   err.Error(),
		Data:      map[string]string{"kind": kind},
		Timestamp: time.Now(),
	})
	return err
}

func (c *Coordinator) createLog(runID string, opts Options) int64 {
	if c.store == nil {
		return 0
	}
	id, err := c.store.CreateImportLog(runID, opts.Source, opts.Encoding)
	if err != nil {
		log.Printf("create import log: %v", err)
		return 0
	}
	return id
}

func (c *Coordinator) updateLog(id int64, result store.ImportResult) {
	if c.store == nil || id == 0 {
		return
	}
	if err := c.store.UpdateImportLog(id, result); err != nil {
		log.Printf("update import log: %v", err)
	}
}

// sendProgress 发送进度事件；同步加载时通道为 nil，调用方离开后丢弃事件
func (c *Coordinator) sendProgress(ctx context.Context, ch chan ProgressEvent, event ProgressEvent) {
	if ch == nil {
		return
	}
	select {
	case ch <- event:
	case <-ctx.Done():
	}
}
