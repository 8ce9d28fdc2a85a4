package security

import (
	"testing"
)

func TestUIDRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		id      uint
		encoded string
	}{
		{name: "Single digit", id: 7, encoded: "Nw"},
		{name: "Two digits", id: 12, encoded: "MTI"},
		{name: "Large id", id: 123456, encoded: "MTIzNDU2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeUID(tt.id); got != tt.encoded {
				t.Errorf("EncodeUID(%d) = %q, want %q", tt.id, got, tt.encoded)
			}

			id, err := DecodeUID(tt.encoded)
			if err != nil {
				t.Fatalf("DecodeUID() error = %v", err)
			}
			if id != tt.id {
				t.Errorf("DecodeUID(%q) = %d, want %d", tt.encoded, id, tt.id)
			}
		})
	}
}

func TestDecodeUID_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "Not base64", encoded: "***"},
		{name: "Not a number", encoded: "YWJj"},
		{name: "Zero", encoded: "MA"},
		{name: "Empty", encoded: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeUID(tt.encoded); err == nil {
				t.Errorf("DecodeUID(%q) expected error, got nil", tt.encoded)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "s3cret-pass" {
		t.Error("HashPassword() returned the plain password")
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("CheckPassword() = false for the right password")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Error("CheckPassword() = true for the wrong password")
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Plain text", input: "  Cozy flat near the lake ", want: "Cozy flat near the lake"},
		{name: "Script tag", input: "<script>alert(1)</script>Nice", want: "Nice"},
		{name: "Bold tag", input: "<b>Great</b> view", want: "Great view"},
		{name: "Null byte", input: "ab\x00c", want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{name: "Local number", phone: "01712345678", want: true},
		{name: "With separators", phone: "017-1234 5678", want: true},
		{name: "Too short", phone: "12345", want: false},
		{name: "Too long", phone: "8801712345678", want: false},
		{name: "Letters", phone: "0171abc5678", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePhoneNumber(tt.phone); got != tt.want {
				t.Errorf("ValidatePhoneNumber(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}
