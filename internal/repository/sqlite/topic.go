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

const topicQuery = `
	SELECT t.id, t.name, t.description, t.created_at,
	       (SELECT COUNT(*) FROM topic_posts tp WHERE tp.topic_id = t.id)
	FROM topics t`

func scanTopic(row scanner) (*model.Topic, error) {
	var t model.Topic
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.PostsCount); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTopic inserts topic with a fresh ID. Names are unique.
func (db *DB) CreateTopic(ctx context.Context, topic *model.Topic) error {
	topic.ID = xid.New().String()
	topic.CreatedAt = now()
	topic.PostsCount = 0

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO topics (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
		topic.ID, topic.Name, topic.Description, topic.CreatedAt,
	)
	if isUniqueViolation(err, "topics.name") {
		return apperror.Taken("topic name")
	}
	if err != nil {
		return fmt.Errorf("sqlite: creating topic %q: %w", topic.Name, err)
	}
	return nil
}

// GetTopic returns apperror.ErrNotFound if no topic has id.
func (db *DB) GetTopic(ctx context.Context, id string) (*model.Topic, error) {
	t, err := scanTopic(db.conn.QueryRowContext(ctx, topicQuery+` WHERE t.id = ?`, id))
	if err != nil {
		if noRows(err) {
			return nil, apperror.NotFound("topic", id)
		}
		return nil, fmt.Errorf("sqlite: getting topic %s: %w", id, err)
	}
	return t, nil
}

// ListTopics returns every topic, newest first.
func (db *DB) ListTopics(ctx context.Context) ([]model.Topic, error) {
	rows, err := db.conn.QueryContext(ctx, topicQuery+` ORDER BY t.created_at DESC, t.rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing topics: %w", err)
	}
	defer rows.Close()

	topics := make([]model.Topic, 0)
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning topic row: %w", err)
		}
		topics = append(topics, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating topics: %w", err)
	}
	return topics, nil
}

// DeleteTopic removes the topic, its posts and their comments and likes.
func (db *DB) DeleteTopic(ctx context.Context, id string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		return deleteTopicTx(ctx, tx, id)
	})
}

// topicPostViewQuery selects a TopicPostView. The first placeholder is the viewer ID.
const topicPostViewQuery = `
	SELECT tp.id, tp.topic_id, tp.author_id, tp.content, tp.created_at,
	       ` + userColumns + `,
	       t.id, t.name, t.description, t.created_at,
	       (SELECT COUNT(*) FROM topic_post_likes l WHERE l.topic_post_id = tp.id),
	       EXISTS (SELECT 1 FROM topic_post_likes l WHERE l.topic_post_id = tp.id AND l.user_id = ?),
	       (SELECT COUNT(*) FROM comments c WHERE c.topic_post_id = tp.id)
	FROM topic_posts tp
	JOIN users u ON u.id = tp.author_id
	JOIN topics t ON t.id = tp.topic_id`

func scanTopicPostView(row scanner) (*model.TopicPostView, error) {
	var v model.TopicPostView
	var authorImage sql.NullString

	dest := []any{&v.ID, &v.TopicID, &v.AuthorID, &v.Content, &v.TopicPost.CreatedAt}
	dest = append(dest, userFields(&v.Author, &authorImage)...)
	dest = append(dest, &v.Topic.ID, &v.Topic.Name, &v.Topic.Description, &v.Topic.CreatedAt)
	dest = append(dest, &v.LikesCount, &v.LikedByViewer, &v.CommentsCount)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	v.Author.ProfileImageURL = ptr(authorImage)
	return &v, nil
}

// CreateTopicPost inserts post into its topic. The topic must exist.
func (db *DB) CreateTopicPost(ctx context.Context, post *model.TopicPost) error {
	post.ID = xid.New().String()
	post.CreatedAt = now()
	post.LikesCount = 0

	return db.withTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, "topics", "topic", post.TopicID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO topic_posts (id, topic_id, author_id, content, created_at) VALUES (?, ?, ?, ?, ?)`,
			post.ID, post.TopicID, post.AuthorID, post.Content, post.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("sqlite: creating topic post: %w", err)
		}
		return nil
	})
}

// GetTopicPost returns the topic-post as seen by viewerID.
func (db *DB) GetTopicPost(ctx context.Context, id, viewerID string) (*model.TopicPostView, error) {
	v, err := scanTopicPostView(db.conn.QueryRowContext(ctx, topicPostViewQuery+` WHERE tp.id = ?`, viewerID, id))
	if err != nil {
		if noRows(err) {
			return nil, apperror.NotFound("topic post", id)
		}
		return nil, fmt.Errorf("sqlite: getting topic post %s: %w", id, err)
	}
	return v, nil
}

// ListTopicPosts returns a topic's posts, newest first. An unknown topic is
// apperror.ErrNotFound, not an empty list.
func (db *DB) ListTopicPosts(ctx context.Context, topicID, viewerID string, opts repository.ListOptions) ([]model.TopicPostView, error) {
	if _, err := db.GetTopic(ctx, topicID); err != nil {
		return nil, err
	}

	limit, offset := page(opts)
	rows, err := db.conn.QueryContext(ctx,
		topicPostViewQuery+` WHERE tp.topic_id = ? ORDER BY tp.created_at DESC, tp.rowid DESC LIMIT ? OFFSET ?`,
		viewerID, topicID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing topic posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.TopicPostView, 0)
	for rows.Next() {
		v, err := scanTopicPostView(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning topic post row: %w", err)
		}
		posts = append(posts, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating topic posts: %w", err)
	}
	return posts, nil
}

// UpdateTopicPost stores post's content.
func (db *DB) UpdateTopicPost(ctx context.Context, post *model.TopicPost) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE topic_posts SET content = ? WHERE id = ?`, post.Content, post.ID)
	if err != nil {
		return fmt.Errorf("sqlite: updating topic post %s: %w", post.ID, err)
	}
	return affected(res, apperror.NotFound("topic post", post.ID))
}

// DeleteTopicPost removes the topic-post with its comments and likes.
func (db *DB) DeleteTopicPost(ctx context.Context, id string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		return deleteTopicPostTx(ctx, tx, id)
	})
}

// LikeTopicPost adds userID to the like set. Idempotent.
func (db *DB) LikeTopicPost(ctx context.Context, topicPostID, userID string) error {
	return db.like(ctx, "topic_posts", "topic_post_likes", "topic_post_id", "topic post", topicPostID, userID)
}

// UnlikeTopicPost removes userID from the like set. Idempotent.
func (db *DB) UnlikeTopicPost(ctx context.Context, topicPostID, userID string) error {
	return db.unlike(ctx, "topic_posts", "topic_post_likes", "topic_post_id", "topic post", topicPostID, userID)
}
