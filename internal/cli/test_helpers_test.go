package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"watchlog/internal/history"
	"watchlog/internal/index"
	"watchlog/internal/query"
	"watchlog/internal/takeout"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func videoFrag(title, channel, ts string) takeout.Fragment {
	return takeout.Fragment{HTML: fmt.Sprintf(
		`<div class="outer-cell"><div class="mdl-grid">`+
			`<div class="content-cell mdl-cell mdl-typography--body-1">`+
			`Watched <a href="https://www.youtube.com/watch?v=%s">%s</a><br>`+
			`<a href="https://www.youtube.com/channel/UC-%s">%s</a><br>%s</div>`+
			`</div></div>`,
		title, title, channel, channel, ts)}
}

func adFrag(ts string) takeout.Fragment {
	return takeout.Fragment{HTML: `<div class="outer-cell"><div class="mdl-grid">` +
		`<div class="content-cell mdl-cell mdl-typography--body-1">` +
		`Viewed an ad<br>` + ts + `</div></div></div>`}
}

// seedEngine builds an engine over a small fixed history.
func seedEngine(t *testing.T) *query.Engine {
	t.Helper()
	store := history.Build([]takeout.Fragment{
		videoFrag("Opening video", "Alpha", "Jan 1, 2023, 9:00:00 AM"),
		videoFrag("Clip one", "Beta", "Jan 2, 2023, 10:00:00 AM"),
		videoFrag("Clip two", "Beta", "Jan 2, 2023, 11:00:00 AM"),
		adFrag("Jan 3, 2023, 12:00:00 PM"),
	}, history.Options{Location: time.UTC, Logger: zerolog.Nop()})
	return query.New(store, index.New(store))
}

// writeExport writes a complete export document and returns its path.
func writeExport(t *testing.T, fragments []takeout.Fragment) string {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("<html><body>")
	for _, f := range fragments {
		buf.WriteString(f.HTML)
	}
	buf.WriteString("</body></html>")

	path := t.TempDir() + "/watch-history.html"
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}
