package validator

import "testing"

func TestStripNonDigits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain digits kept", input: "9876543210", want: "9876543210"},
		{name: "spaces and dashes removed", input: "98-765 432.10", want: "9876543210"},
		{name: "country prefix removed", input: "+919876543210", want: "919876543210"},
		{name: "letters removed", input: "abc123", want: "123"},
		{name: "empty stays empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripNonDigits(tt.input); got != tt.want {
				t.Errorf("StripNonDigits(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidMobile(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "ten digits", input: "9876543210", want: true},
		{name: "nine digits", input: "987654321", want: false},
		{name: "eleven digits", input: "98765432101", want: false},
		{name: "contains letters", input: "98765abc10", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidMobile(tt.input); got != tt.want {
				t.Errorf("IsValidMobile(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "no uppercase rejected", input: "abc123", want: false},
		{name: "uppercase and digit accepted", input: "Abc123", want: true},
		{name: "no digit rejected", input: "ABCDEF", want: false},
		{name: "too short rejected", input: "Ab1", want: false},
		{name: "exactly six accepted", input: "Abcde1", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStrongPassword(tt.input); got != tt.want {
				t.Errorf("IsStrongPassword(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidator_CustomTags(t *testing.T) {
	type signupForm struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,strongpwd"`
		Phone    string `json:"phone" validate:"required,mobile10"`
	}

	v := New()

	errs := v.Validate(signupForm{Email: "a@b.com", Password: "Abc123", Phone: "9876543210"})
	if len(errs) != 0 {
		t.Fatalf("valid form produced errors: %v", errs)
	}

	errs = v.Validate(signupForm{Email: "a@b.com", Password: "abc123", Phone: "123"})
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	if !fields["password"] || !fields["phone"] {
		t.Errorf("expected password and phone failures, got %v", errs)
	}
}
