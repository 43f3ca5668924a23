package content

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
	tables "github.com/AtRiskMedia/monster-widget/internal/infrastructure/database"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*MenuRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, tables.NewTableCreator().CreateSchema(db))
	return NewMenuRepository(db, time.Minute, logging.NewDiscardLogger()), db
}

func TestStoreAndFind(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	menu := &content.MenuNode{Title: "Primary", Slug: "primary", Links: []*content.MenuLink{
		{Name: "Blog", URL: "/blog/", Weight: 2},
		{Name: "Home", URL: "/", Weight: 1},
	}}
	require.NoError(t, repo.Store(ctx, menu))
	require.NotEmpty(t, menu.ID)

	found, err := repo.FindByID(ctx, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, "Primary", found.Title)
	require.Len(t, found.Links, 2)
	assert.Equal(t, "Home", found.Links[0].Name)
	assert.Equal(t, menu.ID, found.Links[1].MenuID)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, content.ErrMenuNotFound)
}

func TestSummariesOrderAndCounts(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, &content.MenuNode{ID: "b", Title: "Beta", Slug: "beta", Links: []*content.MenuLink{{Name: "x", URL: "/x"}}}))
	require.NoError(t, repo.Store(ctx, &content.MenuNode{ID: "a", Title: "Alpha", Slug: "alpha"}))

	summaries, err := repo.Summaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []content.NavMenuSummary{
		{ID: "a", Title: "Alpha", LinkCount: 0},
		{ID: "b", Title: "Beta", LinkCount: 1},
	}, summaries)
}

func TestWritesInvalidateSummaries(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, &content.MenuNode{ID: "m", Title: "Menu", Slug: "menu"}))
	summaries, err := repo.Summaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summaries[0].LinkCount)

	require.NoError(t, repo.AddLink(ctx, &content.MenuLink{MenuID: "m", Name: "Home", URL: "/"}))
	summaries, err = repo.Summaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summaries[0].LinkCount)

	require.NoError(t, repo.Delete(ctx, "m"))
	summaries, err = repo.Summaries(ctx)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestAddLinkUnknownMenu(t *testing.T) {
	repo, _ := newTestRepo(t)
	err := repo.AddLink(context.Background(), &content.MenuLink{MenuID: "nope", Name: "x", URL: "/"})
	assert.ErrorIs(t, err, content.ErrMenuNotFound)
}

func TestDeleteUnknownMenu(t *testing.T) {
	repo, _ := newTestRepo(t)
	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), content.ErrMenuNotFound)
}

func TestDeleteRemovesLinks(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, &content.MenuNode{ID: "m", Title: "Menu", Slug: "menu", Links: []*content.MenuLink{{Name: "a", URL: "/a"}}}))
	require.NoError(t, repo.Delete(ctx, "m"))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM menu_links`).Scan(&count))
	assert.Zero(t, count)
}

func TestSeedInitialContentIsIdempotent(t *testing.T) {
	repo, db := newTestRepo(t)
	creator := tables.NewTableCreator()

	require.NoError(t, creator.SeedInitialContent(db))
	require.NoError(t, creator.SeedInitialContent(db))

	menus, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, menus, 3)
	assert.Equal(t, []string{"Empty Menu", "Footer", "Primary"}, []string{menus[0].Title, menus[1].Title, menus[2].Title})
	assert.Len(t, menus[2].Links, 5)
	assert.Empty(t, menus[0].Links)
}
