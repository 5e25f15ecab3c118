// Package service holds the business rules behind the REST API.
//
// THE THREE LAYERS:
//
//	Handler (HTTP)        -> decodes requests, writes responses and status codes
//	Service (this package) -> validates, checks ownership, maps model -> dto
//	Repository (data)     -> reads/writes the sqlite store
//
// Services take and return the transfer representations from internal/dto, so
// the wire contract is decided here and not in the handlers. Failures are
// apperror values (or wrap one); the handler picks the status code.
//
// viewerID is the authenticated caller, or "" for an anonymous request. It
// decides isLikedByCurrentUser and nothing else on reads.
package service

import (
	"github.com/realspace/realspace/internal/apperror"
	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/model"
	"github.com/realspace/realspace/internal/validation"
)

var validate = validation.New()

// requireOwner returns apperror.ErrForbidden unless userID owns the resource.
func requireOwner(ownerID, userID, action string) error {
	if ownerID != userID {
		return apperror.Forbidden("only the author can " + action)
	}
	return nil
}

// MODEL -> DTO MAPPING

func userResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		DisplayName:     u.DisplayName,
		Bio:             u.Bio,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       dto.TimestampPtr(u.CreatedAt),
	}
}

func userSummary(u model.User) dto.UserSummary {
	return dto.UserSummary{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName}
}

func postResponse(v *model.PostView) dto.PostResponse {
	liked, comments := v.LikedByViewer, v.CommentsCount
	return dto.PostResponse{
		ID:                   v.ID,
		Action:               v.Action,
		Subject:              v.Subject,
		Content:              v.Content,
		ImageURL:             v.ImageURL,
		LikesCount:           v.LikesCount,
		CreatedAt:            dto.TimestampPtr(v.Post.CreatedAt),
		Author:               userSummary(v.Author),
		IsLikedByCurrentUser: &liked,
		CommentsCount:        &comments,
	}
}

func postResponses(views []model.PostView) []dto.PostResponse {
	out := make([]dto.PostResponse, 0, len(views))
	for i := range views {
		out = append(out, postResponse(&views[i]))
	}
	return out
}

func topicResponse(t *model.Topic) dto.TopicResponse {
	count := t.PostsCount
	return dto.TopicResponse{
		ID:               t.ID,
		Name:             t.Name,
		TopicDescription: t.Description,
		CreatedAt:        dto.TimestampPtr(t.CreatedAt),
		PostsCount:       &count,
	}
}

func topicPostResponse(v *model.TopicPostView) dto.TopicPostResponse {
	liked, comments := v.LikedByViewer, v.CommentsCount
	return dto.TopicPostResponse{
		ID:         v.ID,
		Content:    v.Content,
		LikesCount: v.LikesCount,
		CreatedAt:  dto.TimestampPtr(v.TopicPost.CreatedAt),
		Author:     userSummary(v.Author),
		Topic: dto.TopicSummary{
			ID:               v.Topic.ID,
			Name:             v.Topic.Name,
			TopicDescription: v.Topic.Description,
		},
		IsLikedByCurrentUser: &liked,
		CommentsCount:        &comments,
	}
}

func commentResponse(v *model.CommentView) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        v.ID,
		Content:   v.Content,
		CreatedAt: dto.TimestampPtr(v.Comment.CreatedAt),
		Author:    userSummary(v.Author),
	}
}

func entityResponse(n *model.Entity) dto.EntityResponse {
	count := n.EventsCount
	return dto.EntityResponse{
		ID:          n.ID,
		Name:        n.Name,
		Address:     n.Address,
		ImageURL:    n.ImageURL,
		CreatedAt:   dto.TimestampPtr(n.CreatedAt),
		EventsCount: &count,
	}
}

func eventResponse(v *model.EventView) dto.EventResponse {
	return dto.EventResponse{
		ID:               v.ID,
		Name:             v.Name,
		Date:             dto.NewTimestamp(v.Date),
		EventDescription: v.Description,
		Link:             v.Link,
		ImageURL:         v.Event.ImageURL,
		CreatedAt:        dto.TimestampPtr(v.Event.CreatedAt),
		Entity: dto.EntitySummary{
			ID:      v.Entity.ID,
			Name:    v.Entity.Name,
			Address: v.Entity.Address,
		},
	}
}

func listItemResponse(it *model.ListItem) dto.ListItemResponse {
	return dto.ListItemResponse{
		ID:        it.ID,
		Action:    it.Action,
		Subject:   it.Subject,
		IsPublic:  it.IsPublic,
		CreatedAt: dto.TimestampPtr(it.CreatedAt),
	}
}
