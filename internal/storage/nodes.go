package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
	"github.com/chrishsmith/sourcify-sub003/internal/service"
)

// defaultSearchLimit caps search results when the caller does not.
const defaultSearchLimit = 50

// GetNode returns the node for a code, or (nil, nil) when absent.
func (s *SQLiteStorage) GetNode(ctx context.Context, code string) (*model.HtsNode, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(code, "code"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT code, level, description, COALESCE(parent_code, ''), COALESCE(general_rate, '')
		 FROM hts_nodes WHERE code = ?`, code)

	node, err := scanNode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get node %s: %w", code, err)
	}
	return node, nil
}

// GetChildren returns the immediate children of a code, ordered by code.
func (s *SQLiteStorage) GetChildren(ctx context.Context, code string) ([]model.HtsNode, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(code, "code"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT code, level, description, COALESCE(parent_code, ''), COALESCE(general_rate, '')
		 FROM hts_nodes WHERE parent_code = ? ORDER BY code`, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get children of %s: %w", code, err)
	}
	defer func() { _ = rows.Close() }()

	return collectNodes(rows)
}

// Search performs a case-insensitive substring search over node
// descriptions, optionally restricted by chapter and level.
func (s *SQLiteStorage) Search(ctx context.Context, term string, filter service.SearchFilter) ([]model.HtsNode, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}

	query := `SELECT code, level, description, COALESCE(parent_code, ''), COALESCE(general_rate, '')
		 FROM hts_nodes WHERE description LIKE ? ESCAPE '\' COLLATE NOCASE`
	args := []any{"%" + escapeLike(term) + "%"}

	if filter.Chapter != "" {
		query += ` AND (code = ? OR code LIKE ?)`
		args = append(args, filter.Chapter, filter.Chapter+"%")
	}
	if filter.Level != "" {
		query += ` AND level = ?`
		args = append(args, string(filter.Level))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	query += ` ORDER BY code LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search for %q: %w", term, err)
	}
	defer func() { _ = rows.Close() }()

	return collectNodes(rows)
}

// escapeLike neutralizes LIKE wildcards in a search term so "100%"
// matches literally instead of as a pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SaveNodes bulk-inserts hierarchy nodes inside a single transaction,
// replacing existing rows with the same code. Used by the import command.
func (s *SQLiteStorage) SaveNodes(ctx context.Context, nodes []model.HtsNode) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateNodes(nodes); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO hts_nodes (code, level, description, parent_code, general_rate)
		 VALUES (?, ?, ?, NULLIF(?, ''), NULLIF(?, ''))`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range nodes {
		n := &nodes[i]
		if _, err := stmt.ExecContext(ctx, n.Code, string(n.Level), n.Description, n.ParentCode, n.GeneralRate); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert node %s: %w", n.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit node import: %w", err)
	}
	return nil
}

// CountNodes returns the number of nodes in the hierarchy.
func (s *SQLiteStorage) CountNodes(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hts_nodes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count nodes: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNode(row rowScanner) (*model.HtsNode, error) {
	var node model.HtsNode
	var level string
	if err := row.Scan(&node.Code, &level, &node.Description, &node.ParentCode, &node.GeneralRate); err != nil {
		return nil, err
	}
	node.Level = model.Level(level)
	return &node, nil
}

func collectNodes(rows *sql.Rows) ([]model.HtsNode, error) {
	var nodes []model.HtsNode
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		nodes = append(nodes, *node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return nodes, nil
}
