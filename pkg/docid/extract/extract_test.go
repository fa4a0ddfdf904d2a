package extract

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "translate french document", "translate french document"},
		{"paragraphs", "<p>translate</p><p>french</p>", "translate french"},
		{"inline", "<b>bold</b> move", "bold move"},
		{"script dropped", "<script>var x = 1;</script><div>visible</div>", "visible"},
		{"style dropped", "<style>p { color: red }</style>text", "text"},
		{"entities", "fish &amp; chips", "fish & chips"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAll(t *testing.T) {
	got := All([]string{"<i>a</i>", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("All() = %v", got)
	}
}
