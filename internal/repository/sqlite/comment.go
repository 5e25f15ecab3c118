package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/realspace/realspace/internal/apperror"
	"github.com/realspace/realspace/internal/model"
)

const commentViewQuery = `
	SELECT c.id, c.author_id, c.post_id, c.topic_post_id, c.content, c.created_at,
	       ` + userColumns + `
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func scanCommentView(row scanner) (*model.CommentView, error) {
	var v model.CommentView
	var postID, topicPostID, authorImage sql.NullString

	dest := []any{&v.ID, &v.AuthorID, &postID, &topicPostID, &v.Content, &v.Comment.CreatedAt}
	dest = append(dest, userFields(&v.Author, &authorImage)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	v.PostID = postID.String
	v.TopicPostID = topicPostID.String
	v.Author.ProfileImageURL = ptr(authorImage)
	return &v, nil
}

// CreateComment attaches comment to its single parent, which must exist.
func (db *DB) CreateComment(ctx context.Context, comment *model.Comment) error {
	if !comment.HasSingleParent() {
		return apperror.ValidationFailed("parent", "comment needs exactly one of post or topic post")
	}
	comment.ID = xid.New().String()
	comment.CreatedAt = now()

	return db.withTx(ctx, func(tx *sql.Tx) error {
		var postID, topicPostID *string
		if comment.PostID != "" {
			if err := exists(ctx, tx, "posts", "post", comment.PostID); err != nil {
				return err
			}
			postID = &comment.PostID
		} else {
			if err := exists(ctx, tx, "topic_posts", "topic post", comment.TopicPostID); err != nil {
				return err
			}
			topicPostID = &comment.TopicPostID
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO comments (id, author_id, post_id, topic_post_id, content, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			comment.ID,
			comment.AuthorID,
			nullable(postID),
			nullable(topicPostID),
			comment.Content,
			comment.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("sqlite: creating comment: %w", err)
		}
		return nil
	})
}

// GetComment returns apperror.ErrNotFound if no comment has id.
func (db *DB) GetComment(ctx context.Context, id string) (*model.CommentView, error) {
	v, err := scanCommentView(db.conn.QueryRowContext(ctx, commentViewQuery+` WHERE c.id = ?`, id))
	if err != nil {
		if noRows(err) {
			return nil, apperror.NotFound("comment", id)
		}
		return nil, fmt.Errorf("sqlite: getting comment %s: %w", id, err)
	}
	return v, nil
}

// ListPostComments returns a post's comments, newest first.
func (db *DB) ListPostComments(ctx context.Context, postID string) ([]model.CommentView, error) {
	return db.listComments(ctx, "posts", "post", "c.post_id", postID)
}

// ListTopicPostComments returns a topic-post's comments, newest first.
func (db *DB) ListTopicPostComments(ctx context.Context, topicPostID string) ([]model.CommentView, error) {
	return db.listComments(ctx, "topic_posts", "topic post", "c.topic_post_id", topicPostID)
}

func (db *DB) listComments(ctx context.Context, parent, resource, column, id string) ([]model.CommentView, error) {
	var comments []model.CommentView
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, parent, resource, id); err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx,
			commentViewQuery+` WHERE `+column+` = ? ORDER BY c.created_at DESC, c.rowid DESC`, id)
		if err != nil {
			return fmt.Errorf("sqlite: listing comments: %w", err)
		}
		defer rows.Close()

		comments = make([]model.CommentView, 0)
		for rows.Next() {
			v, err := scanCommentView(rows)
			if err != nil {
				return fmt.Errorf("sqlite: scanning comment row: %w", err)
			}
			comments = append(comments, *v)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes a single comment.
func (db *DB) DeleteComment(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting comment %s: %w", id, err)
	}
	return affected(res, apperror.NotFound("comment", id))
}
