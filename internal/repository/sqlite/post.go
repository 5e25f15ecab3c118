package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/realspace/realspace/internal/apperror"
	"github.com/realspace/realspace/internal/model"
	"github.com/realspace/realspace/internal/repository"
)

// postViewQuery selects a PostView. The first placeholder is the viewer ID.
const postViewQuery = `
	SELECT p.id, p.author_id, p.action, p.subject, p.content, p.image_url, p.created_at,
	       ` + userColumns + `,
	       (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id),
	       EXISTS (SELECT 1 FROM post_likes l WHERE l.post_id = p.id AND l.user_id = ?),
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
	FROM posts p
	JOIN users u ON u.id = p.author_id`

func scanPostView(row scanner) (*model.PostView, error) {
	var v model.PostView
	var content, image, authorImage sql.NullString

	dest := []any{&v.ID, &v.AuthorID, &v.Action, &v.Subject, &content, &image, &v.Post.CreatedAt}
	dest = append(dest, userFields(&v.Author, &authorImage)...)
	dest = append(dest, &v.LikesCount, &v.LikedByViewer, &v.CommentsCount)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	v.Content = ptr(content)
	v.ImageURL = ptr(image)
	v.Author.ProfileImageURL = ptr(authorImage)
	return &v, nil
}

func (db *DB) listPostViews(ctx context.Context, query string, args ...any) ([]model.PostView, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.PostView, 0)
	for rows.Next() {
		v, err := scanPostView(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning post row: %w", err)
		}
		posts = append(posts, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating posts: %w", err)
	}
	return posts, nil
}

// CreatePost inserts post with a fresh ID.
func (db *DB) CreatePost(ctx context.Context, post *model.Post) error {
	post.ID = xid.New().String()
	post.CreatedAt = now()
	post.LikesCount = 0

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO posts (id, author_id, action, subject, content, image_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		post.ID,
		post.AuthorID,
		post.Action,
		post.Subject,
		nullable(post.Content),
		nullable(post.ImageURL),
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating post: %w", err)
	}
	return nil
}

// GetPost returns the post as seen by viewerID.
func (db *DB) GetPost(ctx context.Context, id, viewerID string) (*model.PostView, error) {
	v, err := scanPostView(db.conn.QueryRowContext(ctx, postViewQuery+` WHERE p.id = ?`, viewerID, id))
	if err != nil {
		if noRows(err) {
			return nil, apperror.NotFound("post", id)
		}
		return nil, fmt.Errorf("sqlite: getting post %s: %w", id, err)
	}
	return v, nil
}

// ListPosts returns every post, newest first.
func (db *DB) ListPosts(ctx context.Context, viewerID string, opts repository.ListOptions) ([]model.PostView, error) {
	limit, offset := page(opts)
	return db.listPostViews(ctx,
		postViewQuery+` ORDER BY p.created_at DESC, p.rowid DESC LIMIT ? OFFSET ?`,
		viewerID, limit, offset,
	)
}

// ListPostsByAuthor returns authorID's posts, newest first.
func (db *DB) ListPostsByAuthor(ctx context.Context, authorID, viewerID string, opts repository.ListOptions) ([]model.PostView, error) {
	limit, offset := page(opts)
	return db.listPostViews(ctx,
		postViewQuery+` WHERE p.author_id = ? ORDER BY p.created_at DESC, p.rowid DESC LIMIT ? OFFSET ?`,
		viewerID, authorID, limit, offset,
	)
}

// UpdatePost stores post's content and image URL.
func (db *DB) UpdatePost(ctx context.Context, post *model.Post) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE posts SET content = ?, image_url = ? WHERE id = ?`,
		nullable(post.Content),
		nullable(post.ImageURL),
		post.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating post %s: %w", post.ID, err)
	}
	return affected(res, apperror.NotFound("post", post.ID))
}

// DeletePost removes the post with its comments and likes.
func (db *DB) DeletePost(ctx context.Context, id string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		return deletePostTx(ctx, tx, id)
	})
}

// LikePost adds userID to the post's like set. Liking twice is a no-op.
func (db *DB) LikePost(ctx context.Context, postID, userID string) error {
	return db.like(ctx, "posts", "post_likes", "post_id", "post", postID, userID)
}

// UnlikePost removes userID from the post's like set. Unliking twice is a no-op.
func (db *DB) UnlikePost(ctx context.Context, postID, userID string) error {
	return db.unlike(ctx, "posts", "post_likes", "post_id", "post", postID, userID)
}

// like and unlike are shared by posts and topic-posts. Table and column names
// are constants from this package, never user input.
func (db *DB) like(ctx context.Context, parent, table, column, resource, id, userID string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, parent, resource, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO `+table+` (`+column+`, user_id) VALUES (?, ?)`, id, userID)
		if err != nil {
			return fmt.Errorf("sqlite: liking %s %s: %w", resource, id, err)
		}
		return nil
	})
}

func (db *DB) unlike(ctx context.Context, parent, table, column, resource, id, userID string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, parent, resource, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE `+column+` = ? AND user_id = ?`, id, userID)
		if err != nil {
			return fmt.Errorf("sqlite: unliking %s %s: %w", resource, id, err)
		}
		return nil
	})
}

// exists returns apperror.ErrNotFound unless table has a row with id.
func exists(ctx context.Context, tx *sql.Tx, table, resource, id string) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id = ?`, id).Scan(&one)
	if noRows(err) {
		return apperror.NotFound(resource, id)
	}
	if err != nil {
		return fmt.Errorf("sqlite: looking up %s %s: %w", resource, id, err)
	}
	return nil
}
