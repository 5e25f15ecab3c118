package viewmodel_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/realspace/realspace/internal/dto"
)

func boolPtr(b bool) *bool { return &b }

func author() dto.UserSummary {
	return dto.UserSummary{ID: "u1", Username: "alice", DisplayName: "Alice"}
}

func post(id string, likes int, liked bool) dto.PostResponse {
	return dto.PostResponse{
		ID:                   id,
		Action:               "watched",
		Subject:              "Film " + id,
		LikesCount:           likes,
		Author:               author(),
		IsLikedByCurrentUser: boolPtr(liked),
	}
}

func topicPost(id string, likes int, liked bool) dto.TopicPostResponse {
	return dto.TopicPostResponse{
		ID:                   id,
		Content:              "post " + id,
		LikesCount:           likes,
		Author:               author(),
		Topic:                dto.TopicSummary{ID: "t1", Name: "Films"},
		IsLikedByCurrentUser: boolPtr(liked),
	}
}

// fakeAPI is an in-memory stand-in for the HTTP client. When err is set every
// call returns it. calls counts every invocation.
type fakeAPI struct {
	mu    sync.Mutex
	err   error
	calls int

	posts       []dto.PostResponse
	createdPost *dto.CreatePostRequest

	topics     []dto.TopicResponse
	topicPosts []dto.TopicPostResponse

	events       []dto.EventResponse
	entities     []dto.EntityResponse
	createdEvent *dto.CreateEventRequest

	items    []dto.ListItemResponse
	comments map[string][]dto.CommentResponse

	users map[string]dto.UserResponse
}

func (f *fakeAPI) call() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeAPI) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// posts

func (f *fakeAPI) ListPosts(ctx context.Context) ([]dto.PostResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return append([]dto.PostResponse{}, f.posts...), nil
}

func (f *fakeAPI) CreatePost(ctx context.Context, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	f.createdPost = &req
	p := dto.PostResponse{
		ID:      fmt.Sprintf("new%d", f.Calls()),
		Action:  req.Action,
		Subject: req.Subject,
		Content: req.Content,
		Author:  author(),
	}
	return &p, nil
}

func (f *fakeAPI) likePost(id string, delta int, liked bool) (*dto.PostResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts[i].LikesCount += delta
			f.posts[i].IsLikedByCurrentUser = boolPtr(liked)
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("no post %s", id)
}

func (f *fakeAPI) LikePost(ctx context.Context, id string) (*dto.PostResponse, error) {
	return f.likePost(id, 1, true)
}

func (f *fakeAPI) UnlikePost(ctx context.Context, id string) (*dto.PostResponse, error) {
	return f.likePost(id, -1, false)
}

func (f *fakeAPI) DeletePost(ctx context.Context, id string) error {
	return f.call()
}

// topics

func (f *fakeAPI) ListTopics(ctx context.Context) ([]dto.TopicResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return append([]dto.TopicResponse{}, f.topics...), nil
}

func (f *fakeAPI) CreateTopic(ctx context.Context, name, description string) (*dto.TopicResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return &dto.TopicResponse{ID: "t-new", Name: name, TopicDescription: description}, nil
}

func (f *fakeAPI) ListTopicPosts(ctx context.Context, topicID string) ([]dto.TopicPostResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return append([]dto.TopicPostResponse{}, f.topicPosts...), nil
}

func (f *fakeAPI) CreateTopicPost(ctx context.Context, topicID, content string) (*dto.TopicPostResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	p := topicPost("tp-new", 0, false)
	p.Content = content
	p.Topic.ID = topicID
	return &p, nil
}

func (f *fakeAPI) UpdateTopicPost(ctx context.Context, id, content string) (*dto.TopicPostResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	p := topicPost(id, 0, false)
	p.Content = content
	return &p, nil
}

func (f *fakeAPI) DeleteTopicPost(ctx context.Context, id string) error {
	return f.call()
}

func (f *fakeAPI) likeTopicPost(id string, delta int, liked bool) (*dto.TopicPostResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	for i := range f.topicPosts {
		if f.topicPosts[i].ID == id {
			f.topicPosts[i].LikesCount += delta
			f.topicPosts[i].IsLikedByCurrentUser = boolPtr(liked)
			p := f.topicPosts[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("no topic post %s", id)
}

func (f *fakeAPI) LikeTopicPost(ctx context.Context, id string) (*dto.TopicPostResponse, error) {
	return f.likeTopicPost(id, 1, true)
}

func (f *fakeAPI) UnlikeTopicPost(ctx context.Context, id string) (*dto.TopicPostResponse, error) {
	return f.likeTopicPost(id, -1, false)
}

// community

func (f *fakeAPI) ListEvents(ctx context.Context) ([]dto.EventResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return append([]dto.EventResponse{}, f.events...), nil
}

func (f *fakeAPI) CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*dto.EventResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	f.createdEvent = &req
	return &dto.EventResponse{
		ID:               "ev-new",
		Name:             req.Name,
		Date:             req.Date,
		EventDescription: req.EventDescription,
		Entity:           dto.EntitySummary{ID: req.EntityID, Name: "Venue", Address: "1 Main St"},
	}, nil
}

func (f *fakeAPI) ListEntities(ctx context.Context) ([]dto.EntityResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return append([]dto.EntityResponse{}, f.entities...), nil
}

func (f *fakeAPI) CreateEntity(ctx context.Context, req dto.CreateEntityRequest) (*dto.EntityResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return &dto.EntityResponse{ID: "en-new", Name: req.Name, Address: req.Address, ImageURL: req.ImageURL}, nil
}

// list

func (f *fakeAPI) ListItems(ctx context.Context) ([]dto.ListItemResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return append([]dto.ListItemResponse{}, f.items...), nil
}

func (f *fakeAPI) CreateListItem(ctx context.Context, action, subject string, isPublic bool) (*dto.ListItemResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return &dto.ListItemResponse{ID: "li-new", Action: action, Subject: subject, IsPublic: isPublic}, nil
}

func (f *fakeAPI) DeleteListItem(ctx context.Context, id string) error {
	return f.call()
}

// comments

func (f *fakeAPI) ListPostComments(ctx context.Context, postID string) ([]dto.CommentResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return append([]dto.CommentResponse{}, f.comments["post:"+postID]...), nil
}

func (f *fakeAPI) CreatePostComment(ctx context.Context, postID, content string) (*dto.CommentResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return &dto.CommentResponse{ID: "c-post-" + postID, Content: content, Author: author()}, nil
}

func (f *fakeAPI) ListTopicPostComments(ctx context.Context, topicPostID string) ([]dto.CommentResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return append([]dto.CommentResponse{}, f.comments["topicpost:"+topicPostID]...), nil
}

func (f *fakeAPI) CreateTopicPostComment(ctx context.Context, topicPostID, content string) (*dto.CommentResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return &dto.CommentResponse{ID: "c-topicpost-" + topicPostID, Content: content, Author: author()}, nil
}

func (f *fakeAPI) DeleteComment(ctx context.Context, id string) error {
	return f.call()
}

// profile

func (f *fakeAPI) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("no user %s", id)
	}
	return &u, nil
}

func (f *fakeAPI) GetUserPosts(ctx context.Context, userID string) ([]dto.PostResponse, error) {
	if err := f.call(); err != nil {
		return nil, err
	}
	return append([]dto.PostResponse{}, f.posts...), nil
}
