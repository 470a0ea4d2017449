package auth

import "testing"

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"", ""},
		{"Bearer", ""},
		{"Bearer ", ""},
		{"bearer abc", ""}, // prefix is case-sensitive
		{"Token abc", ""},
		{"Bearer abc extra", ""},
		{"Basic dXNlcjpwYXNz", ""},
	}

	for _, tc := range cases {
		if got := ExtractBearerToken(tc.header); got != tc.want {
			t.Errorf("ExtractBearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
