// Package format holds the pure presentation helpers shared by the grid,
// the chat cards and the CLI: price, relative date and text escaping.
package format

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale bundles the user-facing strings and number formatting of one language.
type Locale struct {
	Tag            language.Tag
	CurrencySuffix string
	Today          string
	Yesterday      string
	DaysAgo        string // fmt pattern taking the day count
	DateLayout     string
	Fallback       string // shown when a chat turn fails
	EmptyState     string
	BoostBadge     string // fmt pattern taking the boost count
	Pending        string

	printer *message.Printer
}

var Korean = newLocale(Locale{
	Tag:            language.Korean,
	CurrencySuffix: "원",
	Today:          "오늘",
	Yesterday:      "어제",
	DaysAgo:        "%d일 전",
	DateLayout:     "2006. 1. 2.",
	Fallback:       "죄송합니다. 요청 처리 중 오류가 발생했습니다. 다시 시도해주세요.",
	EmptyState:     "등록된 매물이 없습니다",
	BoostBadge:     "🔥 끌어올림 %d회",
	Pending:        "답변을 준비하고 있어요",
})

var English = newLocale(Locale{
	Tag:            language.English,
	CurrencySuffix: " KRW",
	Today:          "Today",
	Yesterday:      "Yesterday",
	DaysAgo:        "%d days ago",
	DateLayout:     "1/2/2006",
	Fallback:       "Sorry, something went wrong while handling your request. Please try again.",
	EmptyState:     "No listings yet",
	BoostBadge:     "🔥 boosted %d×",
	Pending:        "Thinking",
})

func newLocale(l Locale) Locale {
	l.printer = message.NewPrinter(l.Tag)
	return l
}

// LocaleFor maps a config value such as "ko" or "en-US" to a Locale.
// Unknown values fall back to Korean.
func LocaleFor(name string) Locale {
	tag, err := language.Parse(name)
	if err != nil {
		return Korean
	}
	base, _ := tag.Base()
	if base.String() == "en" {
		return English
	}
	return Korean
}

// Price groups thousands per locale and appends the currency suffix.
func (l Locale) Price(price int64) string {
	p := l.printer
	if p == nil {
		p = message.NewPrinter(l.Tag)
	}
	return p.Sprintf("%d", price) + l.CurrencySuffix
}

// Date renders t relative to now. Days are counted as whole elapsed 24h
// periods; anything a week or older gets a calendar date. A zero t has no
// label.
func (l Locale) Date(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	days := int(now.Sub(t) / (24 * time.Hour))
	switch {
	case days <= 0:
		return l.Today
	case days == 1:
		return l.Yesterday
	case days < 7:
		return fmt.Sprintf(l.DaysAgo, days)
	default:
		return t.In(now.Location()).Format(l.DateLayout)
	}
}

func (l Locale) Boost(count int) string {
	return fmt.Sprintf(l.BoostBadge, count)
}

// Escape makes listing-supplied text safe to place on the terminal: escape
// sequences are dropped and remaining control characters are removed, so
// markup like "<script>" is shown literally and cannot restyle the screen.
func Escape(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// EscapeBlock is Escape for multi-line text such as chat turns: line breaks
// survive, everything else matches Escape.
func EscapeBlock(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// TruncateRunes shortens s to max runes, marking the cut with an ellipsis.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
