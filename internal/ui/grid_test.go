package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jol/internal/format"
	"jol/internal/models"
)

var gridNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

func listing(id int64, title string) models.Listing {
	return models.Listing{
		ID:        id,
		Title:     title,
		Content:   "상태 좋아요",
		Price:     650000,
		Category:  "전자기기",
		Region:    "강남구",
		CreatedAt: models.NewTimestamp(gridNow.Add(-3 * 24 * time.Hour)),
	}
}

func gridOpts() GridOptions {
	return GridOptions{Width: 3 * CardWidth, Locale: format.Korean, Now: gridNow}
}

func TestRenderGrid_EmptyAndGridAreExclusive(t *testing.T) {
	empty := RenderGrid(nil, gridOpts())
	assert.True(t, empty.Empty)
	assert.Contains(t, empty.Content, format.Korean.EmptyState)
	assert.Empty(t, empty.Offsets)

	full := RenderGrid([]models.Listing{listing(1, "아이폰")}, gridOpts())
	assert.False(t, full.Empty)
	assert.NotContains(t, full.Content, format.Korean.EmptyState)
	assert.Contains(t, full.Content, "아이폰")
}

func TestRenderGrid_Idempotent(t *testing.T) {
	items := []models.Listing{listing(1, "책상"), listing(2, "의자"), listing(3, "스탠드"), listing(4, "소파")}
	first := RenderGrid(items, gridOpts())
	second := RenderGrid(items, gridOpts())
	assert.Equal(t, first, second)
}

func TestRenderGrid_EscapesMarkupAndControls(t *testing.T) {
	l := listing(1, "<script>alert(1)</script>")
	l.Region = "\x1b[31m강남구\x1b[0m"

	g := RenderGrid([]models.Listing{l}, gridOpts())
	assert.Contains(t, g.Content, "<script>alert(1)</script>")
	assert.NotContains(t, g.Content, "\x1b[31m")
	assert.Contains(t, g.Content, "강남구")
}

func TestRenderGrid_CardFields(t *testing.T) {
	boosted := listing(1, "맥북")
	boosted.BoostCount = 2
	last := models.NewTimestamp(gridNow.Add(-26 * time.Hour))
	boosted.LastBoostedAt = &last

	g := RenderGrid([]models.Listing{boosted, listing(4242, "아이폰")}, gridOpts())
	assert.Contains(t, g.Content, "ID 1")
	assert.Contains(t, g.Content, "ID 4242")
	assert.Contains(t, g.Content, "650,000원")
	assert.Contains(t, g.Content, "어제")
	assert.Contains(t, g.Content, "3일 전")
	assert.Contains(t, g.Content, "🔥 끌어올림 2회")
	assert.Equal(t, 1, strings.Count(g.Content, "🔥"))
}

func TestRenderGrid_ImageLineOnlyWhenPresent(t *testing.T) {
	withImage := listing(1, "책상")
	withImage.ImageURL = "https://img/desk.png"

	g := RenderGrid([]models.Listing{withImage, listing(2, "의자")}, gridOpts())
	assert.Equal(t, 1, strings.Count(g.Content, "🖼"))
	assert.Contains(t, g.Content, "https://img/desk.png")
}

func TestRenderGrid_OffsetsFollowRows(t *testing.T) {
	items := []models.Listing{listing(1, "a"), listing(2, "b"), listing(3, "c")}
	opts := gridOpts()
	opts.Width = CardWidth

	g := RenderGrid(items, opts)
	require.Len(t, g.Offsets, 3)
	assert.Equal(t, 0, g.Offsets[1])
	assert.Greater(t, g.Offsets[2], g.Offsets[1])
	assert.Greater(t, g.Offsets[3], g.Offsets[2])
	assert.Equal(t, g.Offsets[1]+g.Heights[1], g.Offsets[2])

	opts.Width = 3 * CardWidth
	g = RenderGrid(items, opts)
	assert.Equal(t, 0, g.Offsets[3], "three columns share the first row")
}

func TestRenderGrid_HighlightChangesOnlyThatCard(t *testing.T) {
	items := []models.Listing{listing(1, "a")}
	plain := RenderGrid(items, gridOpts())

	opts := gridOpts()
	opts.Highlighted = map[int64]bool{1: true}
	lit := RenderGrid(items, opts)

	assert.NotEqual(t, plain.Content, lit.Content)
	assert.Equal(t, plain.Offsets, lit.Offsets)
}

func TestRenderChatCards_Placeholder(t *testing.T) {
	withImage := listing(1, "책상")
	withImage.ImageURL = "https://img/desk.png"

	out := RenderChatCards([]models.Listing{withImage, listing(4242, "의자")}, format.Korean, "https://placeholder/img.png", 60)
	assert.Contains(t, out, "ID 1")
	assert.Contains(t, out, "ID 4242")
	assert.Contains(t, out, "https://img/desk.png")
	assert.Contains(t, out, "https://placeholder/img.png")
	assert.Contains(t, out, "책상")
	assert.Contains(t, out, "의자")
}
