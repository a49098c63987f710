package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Resolve 在记录中查找列名包含 fragment 的第一列并返回其值
//
// 比较时忽略大小写与重音，并修复 "AÃ±o" 这类二次编码的列名。
// 多列同时命中时按表头顺序取第一列。
func Resolve(rec RawRecord, fragment string) (string, bool) {
	idx := findField(rec.Names(), fragment)
	if idx < 0 {
		return "", false
	}
	return rec[idx].Value, true
}

// findField 返回第一个命中的列索引，未命中返回 -1
func findField(names []string, fragment string) int {
	key := FoldKey(fragment)
	if key == "" {
		return -1
	}
	for i, name := range names {
		if strings.Contains(FoldKey(name), key) {
			return i
		}
	}
	return -1
}

// FoldKey 把列名折叠为用于匹配的形式：修复乱码、去重音、小写
func FoldKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(RepairMojibake(s)))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// RepairMojibake 还原被当作 Latin-1 读取的 UTF-8 文本，无法还原时原样返回
func RepairMojibake(s string) string {
	if isASCII(s) {
		return s
	}
	raw, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return s
	}
	if !utf8.ValidString(raw) {
		return s
	}
	return raw
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
