// Package templates renders the HTML fragments the control page swaps in.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/acarlisle/figuredraw/api/models"
	"github.com/acarlisle/figuredraw/store"
)

// PackList renders the reference pack cards shown on the control page.
func PackList(packs []models.Pack, libraryDir string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if libraryDir == "" {
			_, err := io.WriteString(w, `<div class="pack-empty">No pack library configured</div>`)
			return err
		}
		if len(packs) == 0 {
			_, err := fmt.Fprintf(w, `<div class="pack-empty">No packs found in %s</div>`, html.EscapeString(libraryDir))
			return err
		}

		if _, err := io.WriteString(w, "<div class=\"pack-row\">\n"); err != nil {
			return err
		}
		for _, pack := range packs {
			badge := ""
			if pack.Remote {
				badge = `<span class="pack-badge">remote</span>`
			}
			if _, err := fmt.Fprintf(w,
				"  <div class=\"pack-item\">\n"+
					"    <button class=\"pack-start-btn\" title=\"Start a session from this pack\" onclick=\"startFromPack('%s')\">\n"+
					"      <span class=\"pack-name\">%s</span>%s\n"+
					"      <span class=\"pack-meta\">%d images &middot; %s</span>\n"+
					"    </button>\n"+
					"  </div>\n",
				html.EscapeString(pack.Path),
				html.EscapeString(pack.Name),
				badge,
				pack.ImageCount,
				humanize.Bytes(uint64(pack.SizeBytes)),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div>")
		return err
	})
}

// SessionList renders the recent session history table.
func SessionList(sessions []store.SessionRecord) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(sessions) == 0 {
			_, err := io.WriteString(w, `<div class="session-empty">No sessions yet</div>`)
			return err
		}

		if _, err := io.WriteString(w,
			"<table class=\"session-table\">\n"+
				"  <tr><th>Directory</th><th>Images</th><th>Interval</th><th>When</th></tr>\n",
		); err != nil {
			return err
		}
		for _, session := range sessions {
			if _, err := fmt.Fprintf(w,
				"  <tr class=\"%s\"><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				sessionRowClass(session),
				html.EscapeString(session.Directory),
				sessionProgress(session),
				formatInterval(session.IntervalSeconds),
				humanize.Time(session.StartedAt),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</table>")
		return err
	})
}

// RecentDirList renders datalist options for the directory input.
func RecentDirList(recentDirs []store.RecentDir) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, dir := range recentDirs {
			if _, err := fmt.Fprintf(w, "<option value=\"%s\"></option>\n", html.EscapeString(dir.Path)); err != nil {
				return err
			}
		}
		return nil
	})
}

func sessionRowClass(session store.SessionRecord) string {
	if session.Completed {
		return "session-completed"
	}
	return "session-partial"
}

func sessionProgress(session store.SessionRecord) string {
	if session.Completed {
		return fmt.Sprintf("all %d", session.ImageCount)
	}
	return fmt.Sprintf("%d of %d", session.ImagesShown, session.ImageCount)
}

func formatInterval(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds%60 == 0 {
		return fmt.Sprintf("%dm", seconds/60)
	}
	return fmt.Sprintf("%dm%02ds", seconds/60, seconds%60)
}
