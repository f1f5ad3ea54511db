package youtube

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{"Watch URL with params", "https://www.youtube.com/watch?v=abc123&t=10s", "abc123", true},
		{"Watch URL at end", "https://www.youtube.com/watch?v=abc123", "abc123", true},
		{"Short URL with query", "https://youtu.be/xyz789?si=foo", "xyz789", true},
		{"Short URL at end", "https://youtu.be/xyz789", "xyz789", true},
		{"Unrelated URL", "https://example.com/video", "", false},
		{"Empty string", "", "", false},
		{"Default placeholder", "https://www.youtube.com/watch?v=example", "example", true},
		{"v= wins over youtu.be", "https://youtu.be/short?v=long&x=1", "long", true},
		{"First v= only", "https://www.youtube.com/watch?v=one&v=two", "one", true},
		{"Garbage accepted", "v=!!not an id##", "!!not an id##", true},
		{"Empty ID after v=", "https://www.youtube.com/watch?v=&t=1", "", true},
		{"Any v= substring counts", "https://example.com/?dev=xyz", "xyz", true},
		{"youtu.be without .be/", "youtu.be", "", false},
		{"Short URL keeps ampersand", "https://youtu.be/id1&foo?bar", "id1&foo", true},
		{"Embed URL is not recognized", "https://www.youtube.com/embed/abc123", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractVideoID(tt.url)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("ExtractVideoID(%q) = (%q, %v), want (%q, %v)", tt.url, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestExtractVideoIDIsIdempotent(t *testing.T) {
	inputs := []string{
		"https://www.youtube.com/watch?v=abc123&t=10s",
		"https://youtu.be/xyz789?si=foo",
		"https://example.com/video",
	}

	for _, in := range inputs {
		id1, ok1 := ExtractVideoID(in)
		id2, ok2 := ExtractVideoID(in)
		if id1 != id2 || ok1 != ok2 {
			t.Errorf("ExtractVideoID(%q) not stable: (%q, %v) then (%q, %v)", in, id1, ok1, id2, ok2)
		}
	}
}

func TestExtractVideoIDProperties(t *testing.T) {
	ids := []string{"abc123", "dQw4w9WgXcQ", "a-b_c", "x"}
	prefixes := []string{"https://www.youtube.com/watch?", "https://m.youtube.com/watch?feature=share&", "anything "}

	for _, id := range ids {
		for _, prefix := range prefixes {
			for _, in := range []string{prefix + "v=" + id + "&t=1", prefix + "v=" + id} {
				if got, ok := ExtractVideoID(in); !ok || got != id {
					t.Errorf("ExtractVideoID(%q) = (%q, %v), want %q", in, got, ok, id)
				}
			}
		}
		for _, in := range []string{"https://youtu.be/" + id + "?si=abc", "https://youtu.be/" + id} {
			if got, ok := ExtractVideoID(in); !ok || got != id {
				t.Errorf("ExtractVideoID(%q) = (%q, %v), want %q", in, got, ok, id)
			}
		}
	}
}
