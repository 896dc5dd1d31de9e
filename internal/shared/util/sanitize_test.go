package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"resume.pdf", "resume.pdf", false},
		{"  resume.pdf  ", "resume.pdf", false},
		{"a/b\\c.pdf", "a_b_c.pdf", false},
		{"../etc/passwd", "", true},
		{"   ", "", true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("SanitizeFileName(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("SanitizeFileName(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeVersionName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Backend 2026", "Backend 2026", false},
		{"draft/v2", "draft_v2", false},
		{"", "", true},
		{"///", "", true},
	}
	for _, tc := range cases {
		got, err := SanitizeVersionName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("SanitizeVersionName(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("SanitizeVersionName(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("SanitizeVersionName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
