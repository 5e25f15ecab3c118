package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/realspace/realspace/internal/apperror"
	"github.com/realspace/realspace/internal/model"
)

func TestCommentCreate_Parents(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice.ID, "Dune")
	topic := createTestTopic(t, db, "Films")
	tp := &model.TopicPost{TopicID: topic.ID, AuthorID: alice.ID, Content: "x"}
	mustNil(t, db.CreateTopicPost(ctx, tp))

	tests := []struct {
		name    string
		comment model.Comment
		wantErr error
	}{
		{"on post", model.Comment{AuthorID: alice.ID, PostID: post.ID, Content: "a"}, nil},
		{"on topic post", model.Comment{AuthorID: alice.ID, TopicPostID: tp.ID, Content: "b"}, nil},
		{"no parent", model.Comment{AuthorID: alice.ID, Content: "c"}, apperror.ErrValidation},
		{"two parents", model.Comment{AuthorID: alice.ID, PostID: post.ID, TopicPostID: tp.ID, Content: "d"}, apperror.ErrValidation},
		{"missing post", model.Comment{AuthorID: alice.ID, PostID: "missing", Content: "e"}, apperror.ErrNotFound},
		{"missing topic post", model.Comment{AuthorID: alice.ID, TopicPostID: "missing", Content: "f"}, apperror.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.comment
			err := db.CreateComment(ctx, &c)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("CreateComment() error = %v", err)
				}
				got, err := db.GetComment(ctx, c.ID)
				if err != nil {
					t.Fatalf("GetComment() error = %v", err)
				}
				if got.PostID != tt.comment.PostID || got.TopicPostID != tt.comment.TopicPostID {
					t.Errorf("parents = (%q, %q), want (%q, %q)",
						got.PostID, got.TopicPostID, tt.comment.PostID, tt.comment.TopicPostID)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateComment() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestListPostComments_NewestFirstWithAuthor(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID, "Dune")

	first := &model.Comment{AuthorID: alice.ID, PostID: post.ID, Content: "first"}
	second := &model.Comment{AuthorID: bob.ID, PostID: post.ID, Content: "second"}
	mustNil(t, db.CreateComment(ctx, first))
	mustNil(t, db.CreateComment(ctx, second))

	comments, err := db.ListPostComments(ctx, post.ID)
	mustNil(t, err)
	if len(comments) != 2 || comments[0].ID != second.ID || comments[1].ID != first.ID {
		t.Fatalf("ListPostComments() = %d comments, want [second first]", len(comments))
	}
	if comments[0].Author.Username != "bob" {
		t.Errorf("Author = %s, want bob", comments[0].Author.Username)
	}

	if _, err := db.ListPostComments(ctx, "missing"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("ListPostComments(missing) error = %v, want ErrNotFound", err)
	}
	empty, err := db.ListTopicPostComments(ctx, "missing")
	if !errors.Is(err, apperror.ErrNotFound) || empty != nil {
		t.Errorf("ListTopicPostComments(missing) = (%v, %v), want ErrNotFound", empty, err)
	}
}

func TestCommentDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice.ID, "Dune")
	c := &model.Comment{AuthorID: alice.ID, PostID: post.ID, Content: "x"}
	mustNil(t, db.CreateComment(ctx, c))

	mustNil(t, db.DeleteComment(ctx, c.ID))
	if err := db.DeleteComment(ctx, c.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second DeleteComment() error = %v, want ErrNotFound", err)
	}
	if _, err := db.GetPost(ctx, post.ID, ""); err != nil {
		t.Errorf("post should survive comment deletion: %v", err)
	}
}
