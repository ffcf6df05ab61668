package reconcile

import "testing"

func TestMatchExactPath(t *testing.T) {
	entries := []LibraryEntry{
		{ID: 2, Path: "/library/movies/Movie (2020).mkv"},
		{ID: 1, Path: "/library/movies/Other Movie.mkv"},
	}
	event := PlaybackEvent{Title: "Unrelated Title", Path: "/library/movies/Movie (2020).mkv"}

	result := match(event, entries, nil, false)
	if result.Entry == nil || result.Entry.ID != 2 {
		t.Fatalf("expected exact path match on entry 2, got %+v", result.Entry)
	}
}

func TestMatchExactPathSeparatorAndTrailing(t *testing.T) {
	entries := []LibraryEntry{{ID: 1, Path: `\library\movies\Movie.mkv`}}
	event := PlaybackEvent{Path: "/library/movies/Movie.mkv/"}

	result := match(event, entries, nil, false)
	if result.Entry == nil || result.Entry.ID != 1 {
		t.Fatalf("separator styles should compare equal, got %+v", result.Entry)
	}
}

func TestMatchPathCaseSensitivity(t *testing.T) {
	entries := []LibraryEntry{{ID: 1, Path: "/library/Movie.mkv"}}
	event := PlaybackEvent{Path: "/library/movie.mkv"}

	if result := match(event, entries, nil, false); result.Entry != nil {
		t.Fatalf("case-sensitive comparison should not match, got %+v", result.Entry)
	}
	if result := match(event, entries, nil, true); result.Entry == nil {
		t.Fatal("case-insensitive comparison should match")
	}
}

func TestMatchPrefersExactPathOverName(t *testing.T) {
	entries := []LibraryEntry{
		{ID: 1, Path: "/library/The Movie (2020).mkv", FileName: "The Movie (2020).mkv"},
		{ID: 2, Path: "/archive/copy.mkv", FileName: "The Movie (2020).mkv"},
	}
	event := PlaybackEvent{Title: "The Movie", Path: "/archive/copy.mkv"}

	result := match(event, entries, nil, false)
	if result.Entry == nil || result.Entry.ID != 2 {
		t.Fatalf("exact path must win over name similarity, got %+v", result.Entry)
	}
}

func TestMatchNameFallback(t *testing.T) {
	entries := []LibraryEntry{
		{ID: 1, Path: "/library/Some Other Film.mkv", FileName: "Some Other Film.mkv"},
		{ID: 2, Path: "/library/The Great Movie (2019).mkv", FileName: "The Great Movie (2019).mkv"},
	}
	event := PlaybackEvent{Title: "The Great Movie", Path: "/somewhere/else.mkv"}

	result := match(event, entries, nil, false)
	if result.Entry == nil || result.Entry.ID != 2 {
		t.Fatalf("expected name fallback to entry 2, got %+v", result.Entry)
	}
}

func TestMatchNameFallbackSkippedWithoutTitle(t *testing.T) {
	entries := []LibraryEntry{{ID: 1, Path: "/library/Movie.mkv", FileName: "Movie.mkv"}}
	event := PlaybackEvent{Title: "   ", Path: "/elsewhere/Movie Clone.mkv"}

	if result := match(event, entries, nil, false); result.Entry != nil {
		t.Fatalf("blank title must not trigger name matching, got %+v", result.Entry)
	}
}

func TestMatchStableOrder(t *testing.T) {
	entries := []LibraryEntry{
		{ID: 9, Path: "/b/The Movie.mkv", FileName: "The Movie.mkv"},
		{ID: 3, Path: "/a/The Movie.mkv", FileName: "The Movie.mkv"},
	}
	event := PlaybackEvent{Title: "The Movie", Path: "/nowhere.mkv"}

	for i := 0; i < 5; i++ {
		result := match(event, entries, nil, false)
		if result.Entry == nil || result.Entry.ID != 3 {
			t.Fatalf("lowest identifier must win ties, got %+v", result.Entry)
		}
	}
}

func TestMatchDoesNotMutateInputs(t *testing.T) {
	entries := []LibraryEntry{
		{ID: 9, Path: "/b.mkv"},
		{ID: 3, Path: "/a.mkv"},
	}
	roots := []LibraryRoot{
		{ID: 5, Path: "/z", Active: true},
		{ID: 1, Path: "/a", Active: true},
	}
	match(PlaybackEvent{Title: "x", Path: "/a.mkv"}, entries, roots, false)

	if entries[0].ID != 9 || entries[1].ID != 3 {
		t.Fatal("entry slice order changed")
	}
	if roots[0].ID != 5 || roots[1].ID != 1 {
		t.Fatal("root slice order changed")
	}
}

func TestMatchRoot(t *testing.T) {
	roots := []LibraryRoot{
		{ID: 1, Path: "/Library/Movies", Active: true},
		{ID: 2, Path: "/library/tv", Active: true},
		{ID: 3, Path: "/library", Active: false},
	}
	cases := []struct {
		name string
		path string
		want int64
	}{
		{"case-insensitive prefix", "/library/movies/Movie.mkv", 1},
		{"second root", "/LIBRARY/TV/Show/ep1.mkv", 2},
		{"inactive root ignored", "/library/music/track.flac", 0},
		{"outside all roots", "/mnt/other/file.mkv", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := matchRoot(PlaybackEvent{Path: tc.path}, roots)
			if tc.want == 0 {
				if root != nil {
					t.Fatalf("expected no root, got %+v", root)
				}
				return
			}
			if root == nil || root.ID != tc.want {
				t.Fatalf("expected root %d, got %+v", tc.want, root)
			}
		})
	}
}

func TestMatchRootIndependentOfEntry(t *testing.T) {
	roots := []LibraryRoot{{ID: 1, Path: "/library", Active: true}}
	event := PlaybackEvent{Title: "No Such Film", Path: "/library/unknown.mkv"}

	result := match(event, nil, roots, false)
	if result.Entry != nil {
		t.Fatalf("no entries, expected nil entry, got %+v", result.Entry)
	}
	if result.Root == nil || result.Root.ID != 1 {
		t.Fatalf("root match must succeed without an entry match, got %+v", result.Root)
	}
}

func TestComparisonName(t *testing.T) {
	cases := []struct {
		name  string
		entry LibraryEntry
		want  string
	}{
		{"stored file name wins", LibraryEntry{Path: "/a/b.mkv", FileName: "stored.mkv"}, "stored.mkv"},
		{"falls back to path base", LibraryEntry{Path: "/a/b/Movie.mkv"}, "Movie.mkv"},
		{"windows separators", LibraryEntry{Path: `C:\media\Movie.mkv`}, "Movie.mkv"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.entry.ComparisonName(); got != tc.want {
				t.Fatalf("ComparisonName() = %q, want %q", got, tc.want)
			}
		})
	}
}
