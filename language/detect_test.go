package language

import "testing"

func Test_Detect(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "Go"},
		{"src/components/App.tsx", "TypeScript"},
		{"Makefile", "Makefile"},
		{"build/Dockerfile", "Dockerfile"},
		{"go.mod", "Go Module"},
		{"README.MD", "Markdown"},
		{"data.xyz", Unknown},
		{"LICENSE", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.path); got != tt.want {
			t.Errorf("Detect(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func Test_IsText(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"plain", []byte("Hello, this is a text file\nwith multiple lines\n"), true},
		{"empty", []byte{}, true},
		{"utf8", []byte("héllo wörld\n"), true},
		{"png header", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}, false},
		{"invalid utf8", []byte{'a', 0xff, 0xfe, 'b'}, false},
	}

	for _, tt := range tests {
		if got := IsText(tt.data); got != tt.want {
			t.Errorf("%s: IsText = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func Test_IsText_NullInMiddle(t *testing.T) {
	content := make([]byte, 100)
	for i := range content {
		content[i] = 'a'
	}
	content[50] = 0x00
	if IsText(content) {
		t.Error("expected content with null byte to be rejected")
	}
}

func Test_CountLines(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"a\nb\n", 2},
		{"\n", 1},
		{"\n\n", 2},
		{"a\r\nb\r\n", 2},
	}

	for _, tt := range tests {
		if got := CountLines([]byte(tt.content)); got != tt.want {
			t.Errorf("CountLines(%q) = %d, want %d", tt.content, got, tt.want)
		}
	}
}
