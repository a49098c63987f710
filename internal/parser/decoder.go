package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/esmerado/demographic-analysis-madrid/internal/model"
)

// DefaultEncoding 数据门户导出的 CSV 使用 Latin-1
const DefaultEncoding = "iso-8859-1"

// Delimiter 字段分隔符
const Delimiter = ';'

var encodings = map[string]*charmap.Charmap{
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"latin9":       charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
}

// Decoder 单字节编码 + 分号分隔文本的解码器
type Decoder struct {
	name string
	enc  encoding.Encoding
}

// NewDecoder 按编码名称创建解码器，空名称使用 DefaultEncoding
func NewDecoder(encodingName string) (*Decoder, error) {
	name := strings.ToLower(strings.TrimSpace(encodingName))
	if name == "" {
		name = DefaultEncoding
	}
	cm, ok := encodings[name]
	if !ok {
		return nil, &model.DecodeError{Reason: fmt.Sprintf("unsupported encoding %q", encodingName)}
	}
	return &Decoder{name: name, enc: cm}, nil
}

// Encoding 返回编码名称
func (d *Decoder) Encoding() string {
	return d.name
}

// Decode 解码整个缓冲区并按表头拆分为原始记录
func (d *Decoder) Decode(buf []byte) ([]RawRecord, error) {
	if len(buf) == 0 {
		return nil, &model.DecodeError{Reason: "empty buffer"}
	}

	text, _, err := transform.Bytes(d.enc.NewDecoder(), buf)
	if err != nil {
		return nil, &model.DecodeError{Reason: "charset conversion failed", Err: err}
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = Delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &model.DecodeError{Reason: "missing header row"}
	}
	if err != nil {
		return nil, &model.DecodeError{Reason: "invalid header row", Err: err}
	}
	header = cleanHeader(header)
	if isBlankRow(header) {
		return nil, &model.DecodeError{Reason: "missing header row"}
	}

	var out []RawRecord
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &model.DecodeError{Reason: "invalid delimited text", Err: err}
		}
		if isBlankRow(row) {
			continue
		}
		rec := make(RawRecord, len(header))
		for i, name := range header {
			rec[i].Name = name
			if i < len(row) {
				rec[i].Value = row[i]
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// cleanHeader 去掉列名首尾空白以及误写入的 BOM 残留
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "ï»¿")
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = NormalizeColumnName(h)
	}
	return out
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
