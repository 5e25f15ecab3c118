package viewmodel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/viewmodel"
)

func TestTopicFeedViewModel(t *testing.T) {
	ctx := context.Background()

	t.Run("create before load is a no-op", func(t *testing.T) {
		api := &fakeAPI{}
		vm := viewmodel.NewTopicFeedViewModel(api, nil)
		assert.False(t, vm.CreatePost(ctx, "hello"))
		assert.Equal(t, 0, api.Calls())
	})

	api := &fakeAPI{topicPosts: []dto.TopicPostResponse{topicPost("tp1", 2, false)}}
	vm := viewmodel.NewTopicFeedViewModel(api, nil)
	require.True(t, vm.Load(ctx, "t1"))
	assert.Equal(t, "t1", vm.TopicID())

	t.Run("blank content is a no-op", func(t *testing.T) {
		calls := api.Calls()
		assert.False(t, vm.CreatePost(ctx, " \n "))
		assert.Equal(t, calls, api.Calls())
	})

	t.Run("create inserts at head", func(t *testing.T) {
		require.True(t, vm.CreatePost(ctx, "first!"))
		items := vm.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "tp-new", items[0].ID)
		assert.Equal(t, "t1", items[0].Topic.ID)
	})

	t.Run("update replaces by id", func(t *testing.T) {
		require.True(t, vm.UpdatePost(ctx, "tp1", "edited"))
		p, ok := vm.Find("tp1")
		require.True(t, ok)
		assert.Equal(t, "edited", p.Content)
		assert.Len(t, vm.Items(), 2)
	})

	t.Run("like then unlike restores the count", func(t *testing.T) {
		require.True(t, vm.ToggleLike(ctx, "tp1"))
		p, _ := vm.Find("tp1")
		assert.Equal(t, 3, p.LikesCount)

		require.True(t, vm.ToggleLike(ctx, "tp1"))
		p, _ = vm.Find("tp1")
		assert.Equal(t, 2, p.LikesCount)
	})

	t.Run("delete removes by id", func(t *testing.T) {
		require.True(t, vm.DeletePost(ctx, "tp1"))
		_, ok := vm.Find("tp1")
		assert.False(t, ok)
		assert.Len(t, vm.Items(), 1)
	})
}
