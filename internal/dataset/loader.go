package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/esmerado/demographic-analysis-madrid/internal/model"
	"github.com/esmerado/demographic-analysis-madrid/internal/parser"
)

// defaultHTTPTimeout 远程数据集的整体超时
const defaultHTTPTimeout = 30 * time.Second

// LoadOptions 加载选项
type LoadOptions struct {
	Encoding   string
	HTTPClient *http.Client
}

// IsRemote 判断数据源是否为 http(s) 地址
func IsRemote(source string) bool {
	s := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetch 读取完整的数据源字节；任何失败都以 FetchError 返回
func Fetch(ctx context.Context, source string, client *http.Client) ([]byte, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &model.FetchError{Source: source, Err: fmt.Errorf("empty source")}
	}
	if !IsRemote(source) {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, &model.FetchError{Source: source, Err: err}
		}
		return b, nil
	}

	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, &model.FetchError{Source: source, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &model.FetchError{Source: source, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.FetchError{Source: source, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.FetchError{Source: source, Err: err}
	}
	return b, nil
}

// Build 解码、规范化并分组；出错时不返回部分数据
func Build(buf []byte, encoding string) (model.Dataset, *parser.LoadReport, error) {
	start := time.Now()

	dec, err := parser.NewDecoder(encoding)
	if err != nil {
		return nil, nil, err
	}
	raws, err := dec.Decode(buf)
	if err != nil {
		return nil, nil, err
	}

	report := &parser.LoadReport{
		Encoding: dec.Encoding(),
		Bytes:    int64(len(buf)),
	}
	if len(raws) > 0 {
		report.Columns = raws[0].Names()
		report.Missing = parser.MapColumns(report.Columns).Missing()
	}

	records, stats := parser.Normalize(raws)
	groups := GroupByConcept(records)

	report.Stats = stats
	report.Concepts = len(groups)
	report.Duration = time.Since(start)
	return groups, report, nil
}

// LoadDataset 读取并处理整个数据集
func LoadDataset(ctx context.Context, source string, opts LoadOptions) (model.Dataset, *parser.LoadReport, error) {
	buf, err := Fetch(ctx, source, opts.HTTPClient)
	if err != nil {
		return nil, nil, err
	}
	groups, report, err := Build(buf, opts.Encoding)
	if err != nil {
		return nil, nil, err
	}
	report.Source = source
	return groups, report, nil
}
