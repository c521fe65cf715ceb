package image

import "testing"

func TestNormalizeAspectRatio(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1:1", want: "1:1"},
		{in: " 16:9 ", want: "16:9"},
		{in: "9:16", want: "9:16"},
		{in: "", want: "1:1"},
		{in: "banner", want: "1:1"},
		{in: "2:3", want: "1:1"},
	}
	for _, tc := range tests {
		if got := NormalizeAspectRatio(tc.in); got != tc.want {
			t.Fatalf("NormalizeAspectRatio(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewImagenGeneratorRequiresClient(t *testing.T) {
	if _, err := NewImagenGenerator(nil, ""); err == nil {
		t.Fatal("NewImagenGenerator(nil) expected error")
	}
}
