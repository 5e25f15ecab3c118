package sqlite

import (
	"context"
	"fmt"

	"github.com/rs/xid"

	"github.com/realspace/realspace/internal/apperror"
	"github.com/realspace/realspace/internal/model"
)

const listItemColumns = `id, user_id, action, subject, is_public, created_at`

func scanListItem(row scanner) (*model.ListItem, error) {
	var it model.ListItem
	if err := row.Scan(&it.ID, &it.UserID, &it.Action, &it.Subject, &it.IsPublic, &it.CreatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

func (db *DB) CreateListItem(ctx context.Context, item *model.ListItem) error {
	item.ID = xid.New().String()
	item.CreatedAt = now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO list_items (`+listItemColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.Action, item.Subject, item.IsPublic, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating list item: %w", err)
	}
	return nil
}

func (db *DB) GetListItem(ctx context.Context, id string) (*model.ListItem, error) {
	it, err := scanListItem(db.conn.QueryRowContext(ctx,
		`SELECT `+listItemColumns+` FROM list_items WHERE id = ?`, id))
	if err != nil {
		if noRows(err) {
			return nil, apperror.NotFound("list item", id)
		}
		return nil, fmt.Errorf("sqlite: getting list item %s: %w", id, err)
	}
	return it, nil
}

// ListItemsByUser returns userID's list, newest first.
func (db *DB) ListItemsByUser(ctx context.Context, userID string) ([]model.ListItem, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+listItemColumns+` FROM list_items WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing list items: %w", err)
	}
	defer rows.Close()

	items := make([]model.ListItem, 0)
	for rows.Next() {
		it, err := scanListItem(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning list item row: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating list items: %w", err)
	}
	return items, nil
}

func (db *DB) DeleteListItem(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM list_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting list item %s: %w", id, err)
	}
	return affected(res, apperror.NotFound("list item", id))
}
