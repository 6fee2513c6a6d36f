package templates

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/acarlisle/figuredraw/api/models"
	"github.com/acarlisle/figuredraw/store"
)

func TestPackListEmptyLibrary(t *testing.T) {
	var sb strings.Builder
	if err := PackList(nil, "").Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(sb.String(), "No pack library configured") {
		t.Errorf("got %q, want empty-library message", sb.String())
	}
}

func TestPackListRendersPacks(t *testing.T) {
	packs := []models.Pack{
		{Name: "gestures", Path: "/library/gestures", ImageCount: 42, SizeBytes: 1 << 20},
		{Name: "remote", Path: "/library/remote", ImageCount: 7, SizeBytes: 2048, Remote: true},
	}

	var sb strings.Builder
	if err := PackList(packs, "/library").Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	got := sb.String()

	for _, want := range []string{
		"gestures",
		"42 images",
		"startFromPack('/library/gestures')",
		`<span class="pack-badge">remote</span>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("pack list missing %q in %q", want, got)
		}
	}
}

func TestPackListEscapesPaths(t *testing.T) {
	packs := []models.Pack{
		{Name: "<script>", Path: `/library/"quoted"`, ImageCount: 1},
	}

	var sb strings.Builder
	if err := PackList(packs, "/library").Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	got := sb.String()

	if strings.Contains(got, "<script>") {
		t.Errorf("pack name not escaped: %q", got)
	}
	if strings.Contains(got, `"quoted"`) {
		t.Errorf("pack path not escaped: %q", got)
	}
}

func TestSessionListRendersRows(t *testing.T) {
	ended := time.Now().Add(-30 * time.Minute)
	sessions := []store.SessionRecord{
		{
			ID: 2, Directory: "/poses/figures", ImageCount: 24, ImagesShown: 24,
			IntervalSeconds: 90, StartedAt: time.Now().Add(-time.Hour), EndedAt: &ended, Completed: true,
		},
		{
			ID: 1, Directory: "/poses/hands", ImageCount: 12, ImagesShown: 5,
			IntervalSeconds: 60, StartedAt: time.Now().Add(-24 * time.Hour),
		},
	}

	var sb strings.Builder
	if err := SessionList(sessions).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	got := sb.String()

	for _, want := range []string{
		"session-completed",
		"all 24",
		"1m30s",
		"session-partial",
		"5 of 12",
		"1m",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("session list missing %q in %q", want, got)
		}
	}
}

func TestSessionListEmpty(t *testing.T) {
	var sb strings.Builder
	if err := SessionList(nil).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(sb.String(), "No sessions yet") {
		t.Errorf("got %q, want empty message", sb.String())
	}
}

func TestRecentDirListOptions(t *testing.T) {
	recentDirs := []store.RecentDir{
		{Path: "/poses/figures"},
		{Path: "/poses/hands"},
	}

	var sb strings.Builder
	if err := RecentDirList(recentDirs).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	got := sb.String()

	if !strings.Contains(got, `<option value="/poses/figures">`) {
		t.Errorf("missing first option in %q", got)
	}
	if !strings.Contains(got, `<option value="/poses/hands">`) {
		t.Errorf("missing second option in %q", got)
	}
}

func TestFormatInterval(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{30, "30s"},
		{60, "1m"},
		{90, "1m30s"},
		{150, "2m30s"},
		{300, "5m"},
	}
	for _, tt := range tests {
		if got := formatInterval(tt.seconds); got != tt.want {
			t.Errorf("formatInterval(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
