package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jol/internal/models"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a listing id does not exist.
var ErrNotFound = errors.New("listing not found")

const sqliteTime = "2006-01-02 15:04:05"

var allowedSortFields = map[string]bool{
	"created_at":      true,
	"updated_at":      true,
	"last_boosted_at": true,
	"price":           true,
	"boost_count":     true,
	"id":              true,
}

// OpenListingsDB opens the listing table used by the mock backend. An empty
// path keeps everything in memory.
func OpenListingsDB(path string) (*sql.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A second pooled connection would open a separate in-memory database.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS listings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			price INTEGER NOT NULL,
			category TEXT NOT NULL,
			region TEXT NOT NULL,
			image_url TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			last_boosted_at TEXT,
			boost_count INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status, created_at DESC);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return db, nil
}

type NewListing struct {
	Title    string
	Content  string
	Price    int64
	Category string
	Region   string
	ImageURL string
}

func CreateListing(db *sql.DB, l NewListing, now time.Time) (int64, error) {
	ts := now.Format(sqliteTime)
	var image any
	if l.ImageURL != "" {
		image = l.ImageURL
	}
	res, err := db.Exec(
		`INSERT INTO listings(title, content, price, category, region, image_url, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Title, l.Content, l.Price, l.Category, l.Region, image, ts, ts,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// orderClause whitelists the sort field and falls back to created_at.
// last_boosted_at sorts never-boosted listings by their creation time.
func orderClause(sortBy, sortOrder string) string {
	if !allowedSortFields[sortBy] {
		sortBy = "created_at"
	}
	order := strings.ToUpper(sortOrder)
	if order != "ASC" {
		order = "DESC"
	}
	if sortBy == "last_boosted_at" {
		return fmt.Sprintf("COALESCE(last_boosted_at, created_at) %s, id %s", order, order)
	}
	return fmt.Sprintf("%s %s, id %s", sortBy, order, order)
}

const listingColumns = `id, title, content, price, category, region, image_url, status,
	created_at, updated_at, last_boosted_at, boost_count`

func GetListings(db *sql.DB, status, sortBy, sortOrder string) ([]models.Listing, error) {
	rows, err := db.Query(
		"SELECT "+listingColumns+" FROM listings WHERE status = ? ORDER BY "+orderClause(sortBy, sortOrder),
		status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func GetListing(db *sql.DB, id int64) (models.Listing, error) {
	row := db.QueryRow("SELECT "+listingColumns+" FROM listings WHERE id = ?", id)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Listing{}, ErrNotFound
	}
	return l, err
}

func BoostListing(db *sql.DB, id int64, now time.Time) error {
	ts := now.Format(sqliteTime)
	return execOne(db,
		"UPDATE listings SET last_boosted_at = ?, updated_at = ?, boost_count = boost_count + 1 WHERE id = ?",
		ts, ts, id,
	)
}

func UpdatePrice(db *sql.DB, id int64, price int64, now time.Time) error {
	return execOne(db,
		"UPDATE listings SET price = ?, updated_at = ? WHERE id = ?",
		price, now.Format(sqliteTime), id,
	)
}

func execOne(db *sql.DB, query string, args ...any) error {
	res, err := db.Exec(query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(s scanner) (models.Listing, error) {
	var (
		l                    models.Listing
		image, lastBoosted   sql.NullString
		createdAt, updatedAt string
	)
	if err := s.Scan(&l.ID, &l.Title, &l.Content, &l.Price, &l.Category, &l.Region, &image, &l.Status,
		&createdAt, &updatedAt, &lastBoosted, &l.BoostCount); err != nil {
		return models.Listing{}, err
	}

	l.ImageURL = image.String
	l.CreatedAt = parseTime(createdAt)
	updated := parseTime(updatedAt)
	l.UpdatedAt = &updated
	if lastBoosted.Valid && lastBoosted.String != "" {
		boosted := parseTime(lastBoosted.String)
		l.LastBoostedAt = &boosted
	}
	return l, nil
}

func parseTime(s string) models.Timestamp {
	t, err := time.ParseInLocation(sqliteTime, s, time.Local)
	if err != nil {
		return models.Timestamp{}
	}
	return models.NewTimestamp(t)
}
