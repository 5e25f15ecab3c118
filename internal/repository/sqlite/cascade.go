package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/realspace/realspace/internal/apperror"
)

// CASCADES:
// Each function deletes the children of one parent kind, deepest first, then
// the parent. They run inside the caller's transaction so a failure leaves
// nothing half-deleted. Children are found through their foreign key columns.

// execAll runs each statement with the same argument.
func execAll(ctx context.Context, tx *sql.Tx, arg string, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, arg); err != nil {
			return fmt.Errorf("sqlite: cascade %q: %w", stmt, err)
		}
	}
	return nil
}

// deleteParent removes the parent row, reporting notFound when it is absent.
func deleteParent(ctx context.Context, tx *sql.Tx, stmt, id string, notFound error) error {
	res, err := tx.ExecContext(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("sqlite: %q: %w", stmt, err)
	}
	return affected(res, notFound)
}

// deletePostTx: Post -> Comments, likes.
func deletePostTx(ctx context.Context, tx *sql.Tx, id string) error {
	if err := execAll(ctx, tx, id,
		`DELETE FROM comments WHERE post_id = ?`,
		`DELETE FROM post_likes WHERE post_id = ?`,
	); err != nil {
		return err
	}
	return deleteParent(ctx, tx, `DELETE FROM posts WHERE id = ?`, id, apperror.NotFound("post", id))
}

// deleteTopicPostTx: TopicPost -> Comments, likes.
func deleteTopicPostTx(ctx context.Context, tx *sql.Tx, id string) error {
	if err := execAll(ctx, tx, id,
		`DELETE FROM comments WHERE topic_post_id = ?`,
		`DELETE FROM topic_post_likes WHERE topic_post_id = ?`,
	); err != nil {
		return err
	}
	return deleteParent(ctx, tx, `DELETE FROM topic_posts WHERE id = ?`, id, apperror.NotFound("topic post", id))
}

// deleteTopicTx: Topic -> TopicPosts -> Comments, likes.
func deleteTopicTx(ctx context.Context, tx *sql.Tx, id string) error {
	if err := execAll(ctx, tx, id,
		`DELETE FROM comments WHERE topic_post_id IN (SELECT id FROM topic_posts WHERE topic_id = ?)`,
		`DELETE FROM topic_post_likes WHERE topic_post_id IN (SELECT id FROM topic_posts WHERE topic_id = ?)`,
		`DELETE FROM topic_posts WHERE topic_id = ?`,
	); err != nil {
		return err
	}
	return deleteParent(ctx, tx, `DELETE FROM topics WHERE id = ?`, id, apperror.NotFound("topic", id))
}

// deleteUserTx: User -> owned Posts (and their Comments and likes), authored
// TopicPosts (and their Comments and likes), authored Comments, ListItems,
// the user's own likes.
func deleteUserTx(ctx context.Context, tx *sql.Tx, id string) error {
	if err := execAll(ctx, tx, id,
		// owned posts
		`DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE author_id = ?)`,
		`DELETE FROM post_likes WHERE post_id IN (SELECT id FROM posts WHERE author_id = ?)`,
		`DELETE FROM posts WHERE author_id = ?`,
		// authored topic-posts
		`DELETE FROM comments WHERE topic_post_id IN (SELECT id FROM topic_posts WHERE author_id = ?)`,
		`DELETE FROM topic_post_likes WHERE topic_post_id IN (SELECT id FROM topic_posts WHERE author_id = ?)`,
		`DELETE FROM topic_posts WHERE author_id = ?`,
		// whatever else they left behind
		`DELETE FROM comments WHERE author_id = ?`,
		`DELETE FROM post_likes WHERE user_id = ?`,
		`DELETE FROM topic_post_likes WHERE user_id = ?`,
		`DELETE FROM list_items WHERE user_id = ?`,
	); err != nil {
		return err
	}
	return deleteParent(ctx, tx, `DELETE FROM users WHERE id = ?`, id, apperror.NotFound("user", id))
}

// deleteEntityTx: Entity -> Events.
func deleteEntityTx(ctx context.Context, tx *sql.Tx, id string) error {
	if err := execAll(ctx, tx, id, `DELETE FROM events WHERE entity_id = ?`); err != nil {
		return err
	}
	return deleteParent(ctx, tx, `DELETE FROM entities WHERE id = ?`, id, apperror.NotFound("entity", id))
}
