package catalog

import "testing"

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Metallica - Master of Puppets", `release:"Master of Puppets" AND artist:"Metallica"`},
		{`Artist - Say "Hi"`, `release:"Say \"Hi\"" AND artist:"Artist"`},
		{"just a query", "just a query"},
		{"  padded  ", "padded"},
	}

	for _, tt := range tests {
		if got := BuildSearchQuery(tt.raw); got != tt.want {
			t.Errorf("BuildSearchQuery(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func credit(name string) []artistCredit {
	return []artistCredit{{Name: name}}
}

func TestSelectRelease(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		candidates []releaseResult
		wantID     string
	}{
		{
			name:  "exact match wins over search order",
			query: "metallica - master of puppets",
			candidates: []releaseResult{
				{ID: "a", Title: "Master of Puppets (Remastered)", ArtistCredit: credit("Metallica")},
				{ID: "b", Title: "MASTER OF PUPPETS", ArtistCredit: credit("Metallica"), Date: "2017"},
			},
			wantID: "b",
		},
		{
			name:  "highest overlap wins",
			query: "daft punk discovery",
			candidates: []releaseResult{
				{ID: "a", Title: "Homework", ArtistCredit: credit("Daft Punk")},
				{ID: "b", Title: "Discovery", ArtistCredit: credit("Daft Punk")},
			},
			wantID: "b",
		},
		{
			name:  "tie broken by earliest date",
			query: "discovery",
			candidates: []releaseResult{
				{ID: "a", Title: "Discovery", ArtistCredit: credit("X"), Date: "2001-03-12"},
				{ID: "b", Title: "Discovery", ArtistCredit: credit("Y"), Date: "1999"},
				{ID: "c", Title: "Discovery", ArtistCredit: credit("Z")},
			},
			wantID: "b",
		},
		{
			name:  "missing dates keep search order",
			query: "discovery",
			candidates: []releaseResult{
				{ID: "a", Title: "Discovery"},
				{ID: "b", Title: "Discovery"},
			},
			wantID: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := selectRelease(tt.query, tt.candidates)
			if !ok {
				t.Fatal("selectRelease() ok = false")
			}
			if got.ID != tt.wantID {
				t.Errorf("selectRelease() = %q, want %q", got.ID, tt.wantID)
			}
		})
	}

	if _, ok := selectRelease("x", nil); ok {
		t.Error("selectRelease(nil) ok = true, want false")
	}
}

func TestFormatArtistCredit(t *testing.T) {
	tests := []struct {
		name    string
		credits []artistCredit
		want    string
	}{
		{"empty", nil, ""},
		{"single", credit("Metallica"), "Metallica"},
		{
			name: "join phrases",
			credits: []artistCredit{
				{Name: "Simon", JoinPhrase: " & "},
				{Name: "Garfunkel"},
			},
			want: "Simon & Garfunkel",
		},
		{
			name: "falls back to artist name",
			credits: func() []artistCredit {
				c := []artistCredit{{JoinPhrase: " feat. "}, {}}
				c[0].Artist.Name = "Main"
				c[1].Artist.Name = "Guest"
				return c
			}(),
			want: "Main feat. Guest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatArtistCredit(tt.credits); got != tt.want {
				t.Errorf("formatArtistCredit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertRelease_MultiDisc(t *testing.T) {
	detail := &releaseDetail{
		ID:    "id",
		Title: "Double",
		Media: []medium{
			{Position: 1, Tracks: []track{{Title: "A"}, {Title: "B"}}},
			{Tracks: []track{{Number: "1", Title: "C"}, {}}},
		},
	}

	release, err := convertRelease(detail)
	if err != nil {
		t.Fatalf("convertRelease() error = %v", err)
	}
	if release.Artist != "Unknown Artist" {
		t.Errorf("Artist = %q, want Unknown Artist", release.Artist)
	}
	if release.TotalDiscs != 2 {
		t.Errorf("TotalDiscs = %d, want 2", release.TotalDiscs)
	}

	want := []struct {
		pos, disc, discPos int
		title              string
	}{
		{1, 1, 1, "A"},
		{2, 1, 2, "B"},
		{3, 2, 1, "C"},
		{4, 2, 2, "Track 2"},
	}
	for i, w := range want {
		got := release.Tracks[i]
		if got.Position != w.pos || got.Disc != w.disc || got.DiscPosition != w.discPos || got.Title != w.title {
			t.Errorf("Tracks[%d] = %+v, want %+v", i, got, w)
		}
	}
}

func TestParseReleaseID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"11111111-2222-3333-4444-555555555555", "11111111-2222-3333-4444-555555555555"},
		{"https://musicbrainz.org/release/AAAAAAAA-2222-3333-4444-555555555555", "aaaaaaaa-2222-3333-4444-555555555555"},
		{"nope", ""},
	}
	for _, tt := range tests {
		if got := ParseReleaseID(tt.in); got != tt.want {
			t.Errorf("ParseReleaseID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
