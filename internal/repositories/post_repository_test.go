package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/anonto42/blogcms/internal/models"
	"github.com/anonto42/blogcms/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepository(t *testing.T) *GormPostRepository {
	t.Helper()

	db, err := config.OpenSQL(config.DriverSQLite, filepath.Join(t.TempDir(), "posts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { (&config.DB{SQL: db}).CloseDB() })

	repo := NewGormPostRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func samplePost(title string) *models.Post {
	return models.NewPost(models.PostFields{
		Title:    title,
		Subtitle: "World",
		Author:   "A",
		ImageURL: "http://x/y.png",
		Body:     "<p>hi</p>",
	}, time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC))
}

func TestGormPostRepository(t *testing.T) {
	testPostRepository(t, func(t *testing.T) PostRepository { return newSQLiteRepository(t) })
}

// testPostRepository exercises the PostRepository contract against any backend
func testPostRepository(t *testing.T, newRepo func(t *testing.T) PostRepository) {
	ctx := context.Background()

	t.Run("create assigns increasing ids", func(t *testing.T) {
		repo := newRepo(t)

		first := samplePost("Hi")
		second := samplePost("Hello")
		require.NoError(t, repo.CreatePost(ctx, first))
		require.NoError(t, repo.CreatePost(ctx, second))

		assert.NotZero(t, first.ID)
		assert.Greater(t, second.ID, first.ID)

		got, err := repo.GetPostByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first, got)
		assert.Equal(t, "June Jun, 2024", got.Date)
	})

	t.Run("lists every post", func(t *testing.T) {
		repo := newRepo(t)

		posts, err := repo.GetAllPosts(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)

		require.NoError(t, repo.CreatePost(ctx, samplePost("one")))
		require.NoError(t, repo.CreatePost(ctx, samplePost("two")))

		posts, err = repo.GetAllPosts(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		titles := []string{posts[0].Title, posts[1].Title}
		assert.ElementsMatch(t, []string{"one", "two"}, titles)
	})

	t.Run("update keeps id and date", func(t *testing.T) {
		repo := newRepo(t)
		post := samplePost("Hi")
		require.NoError(t, repo.CreatePost(ctx, post))

		fields := models.PostFields{
			Title:    "Changed",
			Subtitle: "Sub",
			Author:   "B",
			ImageURL: "http://x/z.png",
			Body:     "<p>changed</p>",
		}
		require.NoError(t, repo.UpdatePost(ctx, post.ID, fields))

		got, err := repo.GetPostByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.ID, got.ID)
		assert.Equal(t, post.Date, got.Date)
		assert.Equal(t, fields, models.PostFields{
			Title:    got.Title,
			Subtitle: got.Subtitle,
			Author:   got.Author,
			ImageURL: got.ImageURL,
			Body:     got.Body,
		})
	})

	t.Run("update with unchanged values succeeds", func(t *testing.T) {
		repo := newRepo(t)
		post := samplePost("Hi")
		require.NoError(t, repo.CreatePost(ctx, post))

		assert.NoError(t, repo.UpdatePost(ctx, post.ID, models.PostFields{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			Author:   post.Author,
			ImageURL: post.ImageURL,
			Body:     post.Body,
		}))
	})

	t.Run("delete removes the post", func(t *testing.T) {
		repo := newRepo(t)
		post := samplePost("Hi")
		require.NoError(t, repo.CreatePost(ctx, post))

		require.NoError(t, repo.DeletePost(ctx, post.ID))

		_, err := repo.GetPostByID(ctx, post.ID)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("unknown ids are not found", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.CreatePost(ctx, samplePost("Hi")))

		_, err := repo.GetPostByID(ctx, 999)
		assert.ErrorIs(t, err, ErrPostNotFound)
		assert.ErrorIs(t, repo.UpdatePost(ctx, 999, models.PostFields{Title: "x"}), ErrPostNotFound)
		assert.ErrorIs(t, repo.DeletePost(ctx, 999), ErrPostNotFound)

		posts, err := repo.GetAllPosts(ctx)
		require.NoError(t, err)
		assert.Len(t, posts, 1)
	})

	t.Run("titles are unique", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.CreatePost(ctx, samplePost("Hi")))
		other := samplePost("Other")
		require.NoError(t, repo.CreatePost(ctx, other))

		assert.ErrorIs(t, repo.CreatePost(ctx, samplePost("Hi")), ErrDuplicateTitle)
		assert.ErrorIs(t, repo.UpdatePost(ctx, other.ID, models.PostFields{Title: "Hi"}), ErrDuplicateTitle)
	})
}
