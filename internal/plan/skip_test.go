package plan

import "testing"

func TestClassifySkip(t *testing.T) {
	cases := []struct {
		name          string
		path          string
		excludeHidden bool
		want          skipReason
	}{
		{"system file", "/photos/.DS_Store", false, skipSystemFile},
		{"system directory", "/photos/.git/objects/ab", false, skipSystemDirectory},
		{"trash", "/photos/.Trash/IMG.jpg", false, skipSystemDirectory},
		{"hidden off", "/photos/.private/IMG.jpg", false, skipNone},
		{"hidden on", "/photos/.private/IMG.jpg", true, skipHiddenPath},
		{"hidden file on", "/photos/.hidden.jpg", true, skipHiddenPath},
		{"plain file", "/photos/IMG.jpg", true, skipNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifySkip(tc.path, tc.excludeHidden); got != tc.want {
				t.Fatalf("classifySkip(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestIsMediaFile(t *testing.T) {
	if !isMediaFile("a/b/photo.JPG", nil) {
		t.Fatal("extension match must be case-insensitive")
	}
	if isMediaFile("a/b/notes.txt", nil) {
		t.Fatal("txt is not media")
	}
	if !isMediaFile("a/b/pano.insp", []string{".insp"}) {
		t.Fatal("extra extensions must widen the media set")
	}
}
