package service

import (
	"testing"

	"moments/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCreateIsIdempotentByName(t *testing.T) {
	env := newTestEnv(t)
	a, err := env.tags.Create("旅行")
	require.NoError(t, err)
	b, err := env.tags.Create(" 旅行 ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	_, err = env.tags.Create("")
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := env.tags.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTagDeleteRemovesLinks(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "", "")
	tag, err := env.tags.Create("x")
	require.NoError(t, err)
	post, err := env.posts.Create(callerOf(alice), PostInput{Title: "p", TagIDs: []uint{tag.ID}})
	require.NoError(t, err)

	require.NoError(t, env.tags.Delete(tag.ID))
	assert.ErrorIs(t, env.tags.Delete(tag.ID), ErrNotFound)

	got, err := env.posts.GetVisibleByID(post.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}

func TestCategoryDeleteClearsPosts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "", "")

	cat, err := env.categories.Create(CategoryInput{Name: "生活", SortOrder: 1})
	require.NoError(t, err)
	_, err = env.categories.Create(CategoryInput{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	cat, err = env.categories.Update(cat.ID, CategoryInput{Name: "日常", IconURL: "icon.png"})
	require.NoError(t, err)
	assert.Equal(t, "日常", cat.Name)

	post, err := env.posts.Create(callerOf(alice), PostInput{Title: "p", CategoryID: &cat.ID})
	require.NoError(t, err)
	require.NotNil(t, post.CategoryID)

	require.NoError(t, env.categories.Delete(cat.ID))
	_, err = env.categories.Get(cat.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var stored model.BlogPost
	require.NoError(t, env.db.First(&stored, post.ID).Error)
	assert.Nil(t, stored.CategoryID)
}
