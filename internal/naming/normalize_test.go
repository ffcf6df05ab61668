package naming

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trailing year", "The Matrix (1999)", "the matrix"},
		{"bracket group", "The Matrix [1080p BluRay]", "the matrix"},
		{"brace group", "The Matrix {edition-Remastered}", "the matrix"},
		{"extension", "The.Matrix.mkv", "the matrix"},
		{"separators", "the_matrix-reloaded.2003", "the matrix reloaded 2003"},
		{"apostrophe", "A Bug's Life", "a bugs life"},
		{"colon", "Blade Runner: 2049", "blade runner 2049"},
		{"ampersand", "Tom & Jerry", "tom and jerry"},
		{"collapse whitespace", "  The   Matrix  ", "the matrix"},
		{"year then extension", "Movie (2020).mkv", "movie"},
		{"inner year kept", "Blade Runner 2049 (2017)", "blade runner 2049"},
		{"dotted abbreviation kept", "3.14", "3 14"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"The Matrix (1999)",
		"Some.Show.S01E01.720p.mkv",
		"Tom & Jerry's Big Adventure [remux]",
		"Weird   spacing\there",
		"plain title",
		"(2001) (2002)",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestDropExtensionGuards(t *testing.T) {
	// "Mr. Smith" has a dot but no real extension; the suffix contains a space.
	if got := Normalize("Mr. Smith Goes to Washington"); got != "mr smith goes to washington" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
