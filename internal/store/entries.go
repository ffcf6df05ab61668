package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"reelcheck/internal/reconcile"
	"reelcheck/internal/services"
)

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// AddRoot registers a library root. Adding an existing path reactivates it.
func (s *Store) AddRoot(ctx context.Context, path string) (reconcile.LibraryRoot, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return reconcile.LibraryRoot{}, services.Wrap(services.ErrValidation, "store", "add root", "path must not be empty", nil)
	}

	_, err := s.execWithRetry(ctx,
		`INSERT INTO library_roots (path, active, created_at) VALUES (?, 1, ?)
         ON CONFLICT (path) DO UPDATE SET active = 1`,
		path, timestamp(),
	)
	if err != nil {
		return reconcile.LibraryRoot{}, fmt.Errorf("insert root: %w", err)
	}

	var root reconcile.LibraryRoot
	var active int
	err = s.db.QueryRowContext(ensureContext(ctx),
		"SELECT id, path, active FROM library_roots WHERE path = ?", path,
	).Scan(&root.ID, &root.Path, &active)
	if err != nil {
		return reconcile.LibraryRoot{}, fmt.Errorf("read root: %w", err)
	}
	root.Active = active != 0
	return root, nil
}

// SetRootActive enables or disables a root without forgetting it.
func (s *Store) SetRootActive(ctx context.Context, id int64, active bool) error {
	value := 0
	if active {
		value = 1
	}
	res, err := s.execWithRetry(ctx, "UPDATE library_roots SET active = ? WHERE id = ?", value, id)
	if err != nil {
		return fmt.Errorf("update root: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "store", "set root active",
			fmt.Sprintf("root %d not found", id), nil)
	}
	return nil
}

// ListRoots returns all roots in ascending-identifier order.
func (s *Store) ListRoots(ctx context.Context) ([]reconcile.LibraryRoot, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		"SELECT id, path, active FROM library_roots ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("list roots: %w", err)
	}
	defer rows.Close()

	var roots []reconcile.LibraryRoot
	for rows.Next() {
		var root reconcile.LibraryRoot
		var active int
		if err := rows.Scan(&root.ID, &root.Path, &active); err != nil {
			return nil, fmt.Errorf("scan root: %w", err)
		}
		root.Active = active != 0
		roots = append(roots, root)
	}
	return roots, rows.Err()
}

// UpsertEntry inserts a library entry or refreshes its file name when the
// path is already known.
func (s *Store) UpsertEntry(ctx context.Context, path, fileName string) (reconcile.LibraryEntry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return reconcile.LibraryEntry{}, services.Wrap(services.ErrValidation, "store", "upsert entry", "path must not be empty", nil)
	}

	now := timestamp()
	_, err := s.execWithRetry(ctx,
		`INSERT INTO library_entries (path, file_name, created_at, updated_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT (path) DO UPDATE SET file_name = excluded.file_name, updated_at = excluded.updated_at`,
		path, fileName, now, now,
	)
	if err != nil {
		return reconcile.LibraryEntry{}, fmt.Errorf("insert entry: %w", err)
	}

	var entry reconcile.LibraryEntry
	err = s.db.QueryRowContext(ensureContext(ctx),
		"SELECT id, path, file_name FROM library_entries WHERE path = ?", path,
	).Scan(&entry.ID, &entry.Path, &entry.FileName)
	if err != nil {
		return reconcile.LibraryEntry{}, fmt.Errorf("read entry: %w", err)
	}
	return entry, nil
}

// GetEntry returns one entry by identifier.
func (s *Store) GetEntry(ctx context.Context, id int64) (reconcile.LibraryEntry, error) {
	var entry reconcile.LibraryEntry
	err := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT id, path, file_name FROM library_entries WHERE id = ?", id,
	).Scan(&entry.ID, &entry.Path, &entry.FileName)
	if errors.Is(err, sql.ErrNoRows) {
		return reconcile.LibraryEntry{}, services.Wrap(services.ErrNotFound, "store", "get entry",
			fmt.Sprintf("entry %d not found", id), nil)
	}
	if err != nil {
		return reconcile.LibraryEntry{}, fmt.Errorf("read entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns all entries in ascending-identifier order.
func (s *Store) ListEntries(ctx context.Context) ([]reconcile.LibraryEntry, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		"SELECT id, path, file_name FROM library_entries ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []reconcile.LibraryEntry
	for rows.Next() {
		var entry reconcile.LibraryEntry
		if err := rows.Scan(&entry.ID, &entry.Path, &entry.FileName); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteEntry removes an entry and its outcomes.
func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	res, err := s.execWithRetry(ctx, "DELETE FROM library_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "store", "delete entry",
			fmt.Sprintf("entry %d not found", id), nil)
	}
	return nil
}
