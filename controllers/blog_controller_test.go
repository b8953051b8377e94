package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Geeky-har/My-Blog/models"
)

func createPosts(t *testing.T, r *testFixture, n int) {
	t.Helper()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		post := models.Post{
			Title:     fmt.Sprintf("Post %d", i),
			Subtitle:  fmt.Sprintf("Subtitle %d", i),
			Slug:      fmt.Sprintf("post-%d", i),
			Content:   fmt.Sprintf("Content of post %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, r.db.Create(&post).Error)
	}
}

func TestHomePaginationScenario(t *testing.T) {
	f := newFixture(t)
	createPosts(t, f, 7)

	// Page 1: posts 1-3, previous disabled, next points at page 2.
	res := doGet(f.router, "/")
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "Post 1")
	assert.Contains(t, body, "Post 3")
	assert.NotContains(t, body, "Post 4")
	assert.Contains(t, body, `href="#"`)
	assert.Contains(t, body, "/?page=2")

	// Page 3: only post 7, next disabled, previous points at page 2.
	res = doGet(f.router, "/?page=3")
	require.Equal(t, http.StatusOK, res.Code)
	body = res.Body.String()
	assert.Contains(t, body, "Post 7")
	assert.NotContains(t, body, "Post 6")
	assert.Contains(t, body, "/?page=2")
	assert.Contains(t, body, `href="#"`)
}

func TestHomeInvalidPageDefaultsToFirst(t *testing.T) {
	f := newFixture(t)
	createPosts(t, f, 7)

	res := doGet(f.router, "/?page=bananas")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Post 1")
	assert.NotContains(t, res.Body.String(), "Post 4")
}

func TestHomePageBeyondLastIsEmpty(t *testing.T) {
	f := newFixture(t)
	createPosts(t, f, 7)

	res := doGet(f.router, "/?page=9")
	require.Equal(t, http.StatusOK, res.Code)
	assert.NotContains(t, res.Body.String(), "Post 1")
	assert.NotContains(t, res.Body.String(), "Post 7")
}

func TestHomeEmptyBlog(t *testing.T) {
	f := newFixture(t)

	res := doGet(f.router, "/")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "No posts yet.")
}

func TestShowPostBySlug(t *testing.T) {
	f := newFixture(t)
	createPosts(t, f, 2)

	res := doGet(f.router, "/post/post-2")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Post 2")
}

func TestShowPostUnknownSlug(t *testing.T) {
	f := newFixture(t)

	res := doGet(f.router, "/post/nope")
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Contains(t, res.Body.String(), "Page not found")
}

func TestShowPostSlugCollisionReturnsFirstMatch(t *testing.T) {
	f := newFixture(t)
	first := models.Post{Title: "First", Slug: "dup", Content: "a"}
	second := models.Post{Title: "Second", Slug: "dup", Content: "b"}
	require.NoError(t, f.db.Create(&first).Error)
	require.NoError(t, f.db.Create(&second).Error)

	res := doGet(f.router, "/post/dup")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "First")
	assert.NotContains(t, res.Body.String(), "Second")
}

func TestContactStoresRecordAndNotifiesOwner(t *testing.T) {
	f := newFixture(t)

	res := doPostForm(f.router, "/contact", url.Values{
		"name":    {"Ann"},
		"email":   {"a@x.com"},
		"phone":   {"555-0100"},
		"message": {"hello there"},
	})
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "your message has been sent")

	var contacts []models.Contact
	require.NoError(t, f.db.Find(&contacts).Error)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ann", contacts[0].Name)
	assert.Equal(t, "a@x.com", contacts[0].Email)

	require.Len(t, f.sent, 1)
	assert.Equal(t, "owner@example.com", f.sent[0].to)
	assert.Equal(t, "New message from Ann", f.sent[0].subject)
	assert.Equal(t, "a@x.com", f.sent[0].replyTo)
	assert.Contains(t, f.sent[0].body, "hello there")
	assert.Contains(t, f.sent[0].body, "555-0100")
}

func TestContactMailFailureStillStoresRecord(t *testing.T) {
	f := newFixture(t)
	f.mailErr = fmt.Errorf("smtp down")

	res := doPostForm(f.router, "/contact", url.Values{
		"name":    {"Ann"},
		"email":   {"a@x.com"},
		"message": {"hello"},
	})
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "could not notify")

	var count int64
	require.NoError(t, f.db.Model(&models.Contact{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestContactMissingRequiredField(t *testing.T) {
	f := newFixture(t)

	res := doPostForm(f.router, "/contact", url.Values{
		"name":    {"Ann"},
		"message": {"no email given"},
	})
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Please fill in")

	var count int64
	require.NoError(t, f.db.Model(&models.Contact{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, f.sent)
}

func TestContactFieldsAreTruncatedToColumnLimits(t *testing.T) {
	f := newFixture(t)

	long := make([]byte, 0, 200)
	for i := 0; i < 200; i++ {
		long = append(long, 'x')
	}
	res := doPostForm(f.router, "/contact", url.Values{
		"name":    {string(long)},
		"email":   {string(long)},
		"phone":   {string(long)},
		"message": {string(long)},
	})
	require.Equal(t, http.StatusOK, res.Code)

	var c models.Contact
	require.NoError(t, f.db.First(&c).Error)
	assert.Len(t, c.Name, 80)
	assert.Len(t, c.Phone, 15)
	assert.Len(t, c.Message, 80)
	assert.Len(t, c.Email, 25)
}
