package validator

import "testing"

func TestValidator(t *testing.T) {
	v := New()
	if !v.Valid() {
		t.Fatal("new validator must be valid")
	}

	v.Check(true, "name", "ignored")
	v.Check(false, "email", "first")
	v.Check(false, "email", "second")

	if v.Valid() {
		t.Fatal("validator with errors must be invalid")
	}
	if got := v.Errors["email"]; got != "first" {
		t.Errorf("Errors[email] = %q, want %q", got, "first")
	}
	if _, ok := v.Errors["name"]; ok {
		t.Error("passing check must not add an error")
	}
}

func TestMatchers(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
		check func(string) bool
	}{
		{"email ok", "admin@example.com", true, func(s string) bool { return Matches(s, EmailRX) }},
		{"email bad", "admin@", false, func(s string) bool { return Matches(s, EmailRX) }},
		{"hex long", "#3b82f6", true, func(s string) bool { return Matches(s, HexRX) }},
		{"hex short", "fff", true, func(s string) bool { return Matches(s, HexRX) }},
		{"hex bad", "#zzzzzz", false, func(s string) bool { return Matches(s, HexRX) }},
		{"uuid ok", "3f1c2d4e-aaaa-bbbb-cccc-1234567890ab", true, func(s string) bool { return Matches(s, UUIDRX) }},
		{"uuid bad", "1", false, func(s string) bool { return Matches(s, UUIDRX) }},
		{"in", "week", true, func(s string) bool { return In(s, "month", "week", "day") }},
		{"not in", "year", false, func(s string) bool { return In(s, "month", "week", "day") }},
		{"max chars unicode", "Düğün", true, func(s string) bool { return MaxChars(s, 5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.value); got != tt.ok {
				t.Errorf("check(%q) = %v, want %v", tt.value, got, tt.ok)
			}
		})
	}
}
