// AngelaMos | 2026
// validate_test.go

package validate

import (
	"strings"
	"testing"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.co", true},
		{"u@d.zw", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"user@.com", false},
		{"user@example.c", false},
		{"user@example.c0m", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Email(tt.in); got != tt.want {
			t.Errorf("Email(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"+263786831091", true},
		{"0786831091", true},
		{"(078) 683-1091", true},
		{"078 683 1091", true},
		{"12345", false},
		{"phone-number", false},
		{"+263-78-ABC-1091", false},
		{"", false},
		{"+", false},
	}

	for _, tt := range tests {
		if got := Phone(tt.in); got != tt.want {
			t.Errorf("Phone(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{`<script>alert("x")</script>`, "scriptalert(x)/script"},
		{"O'Brien", "OBrien"},
		{"plain text", "plain text"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileAllowed(t *testing.T) {
	allowed := []string{"png", "jpg", "jpeg", "gif", "svg"}

	for _, name := range []string{
		"logo.png",
		"photo.JPG",
		"anim.gif",
		"vector.svg",
		"pic.jpeg",
	} {
		if err := FileAllowed(name, allowed); err != nil {
			t.Errorf("FileAllowed(%q) = %v, want nil", name, err)
		}
	}

	for _, name := range []string{
		"malware.exe",
		"doc.pdf",
		"noext",
		"archive.tar.gz",
	} {
		err := FileAllowed(name, allowed)
		if err == nil {
			t.Errorf("FileAllowed(%q) = nil, want error", name)
			continue
		}
		if !strings.Contains(err.Error(), name) &&
			!strings.Contains(err.Error(), "not allowed") {
			t.Errorf("FileAllowed(%q) error %q lacks a usable reason", name, err)
		}
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"logo.png", "logo.png"},
		{"../../etc/passwd", "passwd"},
		{"my logo (final).png", "my_logo__final_.png"},
		{"über.png", "_ber.png"},
		{"...dots...", "dots"},
	}

	for _, tt := range tests {
		if got := SafeFilename(tt.in); got != tt.want {
			t.Errorf("SafeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
