package mockbackend

import (
	"database/sql"
	"fmt"
	"time"

	"jol/internal/db"
)

var sampleListings = []db.NewListing{
	{Title: "아이폰 13 128GB", Content: "배터리 성능 89%, 케이스 끼고 사용했어요.", Price: 650000, Category: "전자기기", Region: "강남구"},
	{Title: "원목 책상", Content: "120x60, 생활기스 조금 있습니다.", Price: 80000, Category: "가구", Region: "서초구", ImageURL: "https://picsum.photos/seed/desk/200"},
	{Title: "노스페이스 패딩", Content: "95 사이즈, 한 시즌 착용", Price: 120000, Category: "의류", Region: "송파구"},
	{Title: "맥북 에어 M1", Content: "풀박스, 사이클 120회", Price: 780000, Category: "전자기기", Region: "서초구", ImageURL: "https://picsum.photos/seed/mac/200"},
	{Title: "요가 매트", Content: "두께 10mm, 거의 새것", Price: 15000, Category: "스포츠", Region: "강동구"},
}

// Seed inserts the sample listings when the table is empty, spreading their
// creation times over the past days so relative dates vary.
func Seed(conn *sql.DB, now time.Time) error {
	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM listings").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i, l := range sampleListings {
		created := now.Add(-time.Duration(len(sampleListings)-i) * 26 * time.Hour)
		if _, err := db.CreateListing(conn, l, created); err != nil {
			return fmt.Errorf("seed %q: %w", l.Title, err)
		}
	}
	return nil
}
