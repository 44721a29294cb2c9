package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := OpenListingsDB("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func seed(t *testing.T, conn *sql.DB, base time.Time) (desk, chair, lamp int64) {
	t.Helper()
	var err error
	desk, err = CreateListing(conn, NewListing{Title: "책상", Content: "원목", Price: 50000, Category: "가구", Region: "강남구"}, base)
	require.NoError(t, err)
	chair, err = CreateListing(conn, NewListing{Title: "의자", Content: "튼튼", Price: 20000, Category: "가구", Region: "서초구", ImageURL: "https://img/chair.png"}, base.Add(time.Hour))
	require.NoError(t, err)
	lamp, err = CreateListing(conn, NewListing{Title: "스탠드", Content: "LED", Price: 15000, Category: "기타", Region: "송파구"}, base.Add(2*time.Hour))
	require.NoError(t, err)
	return desk, chair, lamp
}

func ids(t *testing.T, conn *sql.DB, sortBy, order string) []int64 {
	t.Helper()
	items, err := GetListings(conn, "active", sortBy, order)
	require.NoError(t, err)
	out := make([]int64, 0, len(items))
	for _, l := range items {
		out = append(out, l.ID)
	}
	return out
}

func TestGetListings_Sorting(t *testing.T) {
	conn := openTestDB(t)
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	desk, chair, lamp := seed(t, conn, base)

	assert.Equal(t, []int64{lamp, chair, desk}, ids(t, conn, "created_at", "DESC"))
	assert.Equal(t, []int64{lamp, chair, desk}, ids(t, conn, "price", "ASC"))
	assert.Equal(t, []int64{lamp, chair, desk}, ids(t, conn, "bogus; DROP TABLE listings", "DESC"))

	require.NoError(t, BoostListing(conn, desk, base.Add(5*time.Hour)))
	assert.Equal(t, []int64{desk, lamp, chair}, ids(t, conn, "last_boosted_at", "DESC"))
}

func TestGetListing_Fields(t *testing.T) {
	conn := openTestDB(t)
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	_, chair, _ := seed(t, conn, base)

	l, err := GetListing(conn, chair)
	require.NoError(t, err)
	assert.Equal(t, "의자", l.Title)
	assert.Equal(t, "https://img/chair.png", l.ImageURL)
	assert.Equal(t, "active", l.Status)
	assert.Equal(t, base.Add(time.Hour), l.CreatedAt.Time)
	assert.Nil(t, l.LastBoostedAt)

	_, err = GetListing(conn, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoostAndPrice(t *testing.T) {
	conn := openTestDB(t)
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	desk, _, _ := seed(t, conn, base)

	require.NoError(t, BoostListing(conn, desk, base.Add(time.Hour)))
	require.NoError(t, BoostListing(conn, desk, base.Add(2*time.Hour)))
	require.NoError(t, UpdatePrice(conn, desk, 45000, base.Add(3*time.Hour)))

	l, err := GetListing(conn, desk)
	require.NoError(t, err)
	assert.Equal(t, 2, l.BoostCount)
	assert.Equal(t, int64(45000), l.Price)
	require.NotNil(t, l.LastBoostedAt)
	assert.Equal(t, base.Add(2*time.Hour), l.LastBoostedAt.Time)

	assert.ErrorIs(t, BoostListing(conn, 404, base), ErrNotFound)
	assert.ErrorIs(t, UpdatePrice(conn, 404, 1, base), ErrNotFound)
}
