package history

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlog/internal/takeout"
)

func videoFragment(title, channel, ts string) takeout.Fragment {
	return takeout.Fragment{HTML: fmt.Sprintf(
		`<div class="outer-cell"><div class="mdl-grid">`+
			`<div class="content-cell mdl-cell mdl-cell--6-col mdl-typography--body-1">`+
			`Watched <a href="https://www.youtube.com/watch?v=%s">%s</a><br>`+
			`<a href="https://www.youtube.com/channel/UC-%s">%s</a><br>%s</div>`+
			`</div></div>`,
		title, title, channel, channel, ts)}
}

func adFragment(ts string) takeout.Fragment {
	return takeout.Fragment{HTML: `<div class="outer-cell"><div class="mdl-grid">` +
		`<div class="content-cell mdl-cell mdl-typography--body-1">` +
		`Viewed an ad<br>` + ts + `</div></div></div>`}
}

func brokenFragment() takeout.Fragment {
	return takeout.Fragment{HTML: `<div class="outer-cell"><div class="mdl-grid">` +
		`<div class="content-cell mdl-typography--caption">Products: YouTube</div></div></div>`}
}

func buildStore(t *testing.T, fragments []takeout.Fragment) *Store {
	t.Helper()
	return Build(fragments, Options{Location: time.UTC, Logger: zerolog.Nop()})
}

func TestBuild_SortsChronologically(t *testing.T) {
	fragments := []takeout.Fragment{
		videoFragment("Third", "Chan", "Mar 3, 2023, 10:00:00 AM"),
		videoFragment("First", "Chan", "Jan 1, 2023, 10:00:00 AM"),
		videoFragment("Second", "Chan", "Feb 2, 2023, 10:00:00 AM"),
	}

	store := buildStore(t, fragments)
	require.Equal(t, 3, store.Len())

	recs := store.Records()
	assert.Equal(t, "First", recs[0].Title)
	assert.Equal(t, "Second", recs[1].Title)
	assert.Equal(t, "Third", recs[2].Title)
	for i := 1; i < len(recs); i++ {
		assert.False(t, recs[i].Timestamp.Before(recs[i-1].Timestamp))
	}
}

func TestBuild_OrderIndependence(t *testing.T) {
	var fragments []takeout.Fragment
	for i := 0; i < 20; i++ {
		fragments = append(fragments, videoFragment(
			fmt.Sprintf("Video %02d", i), "Chan",
			fmt.Sprintf("Jan %d, 2023, %d:30:00 PM", i%27+1, i%11+1)))
	}

	shuffled := make([]takeout.Fragment, len(fragments))
	copy(shuffled, fragments)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	a := buildStore(t, fragments)
	b := buildStore(t, shuffled)

	require.Equal(t, a.Len(), b.Len())
	for i := range a.Records() {
		assert.Equal(t, a.Records()[i].Title, b.Records()[i].Title)
	}
}

func TestBuild_ClassificationPartitionsStore(t *testing.T) {
	store := buildStore(t, []takeout.Fragment{
		videoFragment("A", "Chan", "Jan 1, 2023, 10:00:00 AM"),
		adFragment("Jan 2, 2023, 10:00:00 AM"),
		videoFragment("B", "Chan", "Jan 3, 2023, 10:00:00 AM"),
		adFragment("Jan 4, 2023, 10:00:00 AM"),
	})

	assert.Equal(t, 2, store.Videos())
	assert.Equal(t, 2, store.Ads())
	assert.Equal(t, store.Len(), store.Videos()+store.Ads())

	for _, r := range store.Records() {
		if r.ChannelLink == "" {
			assert.Equal(t, KindAd, r.Kind)
		} else {
			assert.Equal(t, KindVideo, r.Kind)
		}
	}
}

func TestBuild_DropsAndCountsBadFragments(t *testing.T) {
	fragments := []takeout.Fragment{brokenFragment()}
	for i := 0; i < 10; i++ {
		fragments = append(fragments, videoFragment(
			fmt.Sprintf("V%d", i), "Chan",
			fmt.Sprintf("Jan %d, 2023, 10:00:00 AM", i+1)))
	}
	fragments = append(fragments, videoFragment("Bad date", "Chan", "sometime in 2023"))

	store := buildStore(t, fragments)

	assert.Equal(t, 10, store.Len())
	assert.Equal(t, 1, store.Dropped().Malformed)
	assert.Equal(t, 1, store.Dropped().Unparseable)
	assert.Equal(t, 2, store.Dropped().Total())
}

func TestBuild_EmptyInput(t *testing.T) {
	store := buildStore(t, nil)
	assert.Equal(t, 0, store.Len())

	oldest, newest := store.Span()
	assert.True(t, oldest.IsZero())
	assert.True(t, newest.IsZero())
}

func TestBuild_Span(t *testing.T) {
	store := buildStore(t, []takeout.Fragment{
		videoFragment("B", "Chan", "Jun 15, 2023, 1:00:00 PM"),
		videoFragment("A", "Chan", "Jan 1, 2021, 9:00:00 AM"),
	})

	oldest, newest := store.Span()
	assert.Equal(t, 2021, oldest.Year())
	assert.Equal(t, 2023, newest.Year())
}

func TestBuild_NormalizesIntoReferenceLocation(t *testing.T) {
	store := buildStore(t, []takeout.Fragment{
		videoFragment("A", "Chan", "Jan 5, 2021, 8:14:03 PM PST"),
	})
	require.Equal(t, 1, store.Len())

	rec := store.Records()[0]
	assert.Equal(t, time.UTC, rec.Timestamp.Location())
	assert.Equal(t, 4, rec.Timestamp.Hour()) // 20:14 -08:00 is 04:14 UTC
}
