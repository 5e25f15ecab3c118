package viewmodel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realspace/realspace/internal/client"
	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/viewmodel"
)

func TestTopicsViewModel_Filtered(t *testing.T) {
	api := &fakeAPI{topics: []dto.TopicResponse{
		{ID: "t1", Name: "Films", TopicDescription: "Cinema talk"},
		{ID: "t2", Name: "Books", TopicDescription: "What are you reading?"},
		{ID: "t3", Name: "Hiking", TopicDescription: "Trails and FILM locations"},
	}}
	vm := viewmodel.NewTopicsViewModel(api, nil)
	require.True(t, vm.Load(context.Background()))

	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"t1", "t2", "t3"}},
		{"film", []string{"t1", "t3"}},
		{"READING", []string{"t2"}},
		{"  books ", []string{"t2"}},
		{"opera", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.search, func(t *testing.T) {
			got := []string{}
			for _, topic := range vm.Filtered(tc.search) {
				got = append(got, topic.ID)
			}
			assert.Equal(t, tc.want, got)
		})
	}

	assert.Len(t, vm.Items(), 3, "filtering leaves the collection alone")
}

func TestTopicsViewModel_CreateTopic(t *testing.T) {
	ctx := context.Background()

	t.Run("blank name is a no-op", func(t *testing.T) {
		api := &fakeAPI{}
		vm := viewmodel.NewTopicsViewModel(api, nil)
		assert.False(t, vm.CreateTopic(ctx, "  ", "desc"))
		assert.Equal(t, 0, api.Calls())
	})

	t.Run("inserted at head", func(t *testing.T) {
		api := &fakeAPI{topics: []dto.TopicResponse{{ID: "t1", Name: "Films"}}}
		vm := viewmodel.NewTopicsViewModel(api, nil)
		require.True(t, vm.Load(ctx))

		assert.True(t, vm.CreateTopic(ctx, " Music ", ""))
		items := vm.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "Music", items[0].Name)
	})

	t.Run("server rejection", func(t *testing.T) {
		api := &fakeAPI{err: &client.HTTPError{Status: 422, Reason: "topic name taken"}}
		vm := viewmodel.NewTopicsViewModel(api, nil)
		assert.False(t, vm.CreateTopic(ctx, "Films", ""))
		assert.Equal(t, "Failed to create topic: topic name taken", vm.ErrorMessage())
	})
}
