package exporter

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/esmerado/demographic-analysis-madrid/internal/parser"
)

// ASCIIFilename 去掉重音后只保留字母数字，空白与其他符号折叠为单个 "-"
func ASCIIFilename(name string) string {
	ext := filepath.Ext(name)
	base := parser.FoldKey(strings.TrimSuffix(name, ext))
	var b strings.Builder
	dash := false
	for _, r := range base {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		out = "export"
	}
	return out + ext
}
