package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Sunrise PG  ",
			want:  "Sunrise PG",
		},
		{
			name:  "multiple spaces between words",
			input: "Sunrise    PG",
			want:  "Sunrise PG",
		},
		{
			name:  "tabs and newlines",
			input: "Sunrise\t\nPG",
			want:  "Sunrise PG",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café & Co-living™ ",
			want:  "Café & Co-living™",
		},
		{
			name:  "devanagari characters",
			input: "  सूर्य   निवास ",
			want:  "सूर्य निवास",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Asha.Rao@Example.COM "); got != "asha.rao@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestNormalizeNotes(t *testing.T) {
	input := "  Arriving late   evening \n\n  please keep   the gate open  "
	want := "Arriving late evening\n\nplease keep the gate open"
	if got := NormalizeNotes(input); got != want {
		t.Errorf("NormalizeNotes() = %q, want %q", got, want)
	}
}

func TestOptionalString(t *testing.T) {
	if OptionalString(nil) != nil {
		t.Errorf("OptionalString(nil) should be nil")
	}
	blank := "   "
	if OptionalString(&blank) != nil {
		t.Errorf("OptionalString of blank should be nil")
	}
	date := " 2025-03-01 "
	got := OptionalString(&date)
	if got == nil || *got != "2025-03-01" {
		t.Errorf("OptionalString() = %v, want 2025-03-01", got)
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name               string
		page, size         int
		wantPage, wantSize int
	}{
		{"defaults applied", 0, 0, 0, 10},
		{"negative page", -3, 20, 0, 20},
		{"size capped", 2, 500, 2, 100},
		{"unchanged", 1, 25, 1, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := NormalizePage(tt.page, tt.size, 10, 100)
			if page != tt.wantPage || size != tt.wantSize {
				t.Errorf("NormalizePage() = (%d, %d), want (%d, %d)", page, size, tt.wantPage, tt.wantSize)
			}
		})
	}
}
