package store

import (
	"database/sql"
	"fmt"
	"time"
)

// ImportLog 一次数据集加载的记录
type ImportLog struct {
	ID           int64      `json:"id"`
	RunID        string     `json:"runId"`
	Source       string     `json:"source"`
	Encoding     string     `json:"encoding"`
	FileSize     int64      `json:"fileSize"`
	FileHash     string     `json:"fileHash"`
	Status       string     `json:"status"` // processing/success/error
	TotalRows    int        `json:"totalRows"`
	ImportedRows int        `json:"importedRows"`
	SkippedRows  int        `json:"skippedRows"`
	Concepts     int        `json:"concepts"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// CreateImportLog 创建导入日志，返回 import_log_id
func (s *Store) CreateImportLog(runID, source, encoding string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (run_id, source, encoding, status)
		VALUES (?, ?, ?, 'processing')
	`, runID, source, encoding)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// ImportResult 导入完成时写回的统计
type ImportResult struct {
	FileSize     int64
	FileHash     string
	TotalRows    int
	ImportedRows int
	SkippedRows  int
	Concepts     int
	Status       string
	ErrorMessage string
}

// UpdateImportLog 完成导入日志更新
func (s *Store) UpdateImportLog(id int64, r ImportResult) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			file_size = ?,
			file_hash = ?,
			total_rows = ?,
			imported_rows = ?,
			skipped_rows = ?,
			concepts = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, r.FileSize, r.FileHash, r.TotalRows, r.ImportedRows, r.SkippedRows, r.Concepts, r.Status, r.ErrorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

// ListImportLogs 按时间倒序列出导入日志
func (s *Store) ListImportLogs(limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, run_id, source, encoding, file_size, file_hash, status,
			total_rows, imported_rows, skipped_rows, concepts, error_message,
			created_at, completed_at
		FROM import_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query import logs failed: %w", err)
	}
	defer rows.Close()

	var out []ImportLog
	for rows.Next() {
		var it ImportLog
		var completed sql.NullTime
		if err := rows.Scan(&it.ID, &it.RunID, &it.Source, &it.Encoding, &it.FileSize, &it.FileHash, &it.Status,
			&it.TotalRows, &it.ImportedRows, &it.SkippedRows, &it.Concepts, &it.ErrorMessage,
			&it.CreatedAt, &completed); err != nil {
			return nil, fmt.Errorf("scan import log failed: %w", err)
		}
		if completed.Valid {
			t := completed.Time
			it.CompletedAt = &t
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate import logs failed: %w", err)
	}
	return out, nil
}

// LastImportLog 最近一次导入日志，没有记录时返回 nil
func (s *Store) LastImportLog() (*ImportLog, error) {
	logs, err := s.ListImportLogs(1)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, nil
	}
	return &logs[0], nil
}
