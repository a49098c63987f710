package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrSettingNotFound 设置项不存在
var ErrSettingNotFound = errors.New("setting not found")

const keySelectedComparison = "selected_comparison"

func (s *Store) setting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM config WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrSettingNotFound, key)
	}
	return value, err
}

func (s *Store) putSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}

// GetSelectedComparison 当前选中的对比项，未设置时返回空字符串
func (s *Store) GetSelectedComparison() (string, error) {
	v, err := s.setting(keySelectedComparison)
	if errors.Is(err, ErrSettingNotFound) {
		return "", nil
	}
	return v, err
}

// SetSelectedComparison 记录当前选中的对比项
func (s *Store) SetSelectedComparison(id string) error {
	return s.putSetting(keySelectedComparison, id)
}
