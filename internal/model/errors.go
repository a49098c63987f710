package model

import (
	"errors"
	"fmt"
)

// ErrRenderSkipped 渲染被有意跳过（缺少数据或容器），不是真正的失败
var ErrRenderSkipped = errors.New("render skipped")

// DecodeError 数据解码失败：空缓冲、缺少表头、分隔文本无法解析
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode dataset: %s: %v", e.Reason, e.Err)
	}
	return "decode dataset: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FetchError 读取数据源失败（文件或网络）
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch dataset %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
