package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/reef/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkWaterPoor      BookmarkType = "water_poor"
	BookmarkWaterRecovered BookmarkType = "water_recovered"
	BookmarkPreyWipedOut   BookmarkType = "prey_wiped_out"
	BookmarkPreyBoom       BookmarkType = "prey_boom"
)

// Bookmark marks an interesting moment in a run.
type Bookmark struct {
	RunID       string       `csv:"run_id"`
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector compares each window with recent history.
type BookmarkDetector struct {
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	boom config.PreyBoomConfig
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, boom config.PreyBoomConfig) *BookmarkDetector {
	if historySize < 1 {
		historySize = 1
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
		boom:        boom,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if prev, ok := bd.last(); ok {
		for _, check := range []func(prev, cur WindowStats) *Bookmark{
			checkWaterPoor,
			checkWaterRecovered,
			checkPreyWipedOut,
		} {
			if b := check(prev, stats); b != nil {
				bookmarks = append(bookmarks, *b)
			}
		}
		if b := bd.checkPreyBoom(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	for i := range bookmarks {
		bookmarks[i].RunID = stats.RunID
		bookmarks[i].Tick = stats.WindowEndTick
	}
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// last returns the most recently added window.
func (bd *BookmarkDetector) last() (WindowStats, bool) {
	if !bd.historyFull && bd.historyIdx == 0 {
		return WindowStats{}, false
	}
	idx := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[idx], true
}

func checkWaterPoor(prev, cur WindowStats) *Bookmark {
	if cur.Status != "poor" || prev.Status == "poor" {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkWaterPoor,
		Description: fmt.Sprintf("Water turned poor at %.1f nitrates", cur.Nitrates),
	}
}

func checkWaterRecovered(prev, cur WindowStats) *Bookmark {
	if prev.Status != "poor" || cur.Status == "poor" {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkWaterRecovered,
		Description: fmt.Sprintf("Water recovered to %s at %.1f nitrates", cur.Status, cur.Nitrates),
	}
}

func checkPreyWipedOut(prev, cur WindowStats) *Bookmark {
	if prev.PreyCount == 0 || cur.PreyCount != 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPreyWipedOut,
		Description: fmt.Sprintf("All %d prey lost, %d captured this window", prev.PreyCount, cur.Captures),
	}
}

// checkPreyBoom fires when prey reach a multiple of their rolling average.
func (bd *BookmarkDetector) checkPreyBoom(cur WindowStats) *Bookmark {
	history := bd.getHistory()
	var sum float64
	for _, h := range history {
		sum += float64(h.PreyCount)
	}
	avg := sum / float64(len(history))
	if avg == 0 || cur.PreyCount < bd.boom.MinPrey {
		return nil
	}
	if float64(cur.PreyCount) < avg*bd.boom.Multiplier {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPreyBoom,
		Description: fmt.Sprintf("Prey at %d, %.1fx the recent average (%.1f)", cur.PreyCount, float64(cur.PreyCount)/avg, avg),
	}
}
