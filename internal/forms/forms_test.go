package forms

import (
	"net/url"
	"testing"
)

func signupValues() url.Values {
	return url.Values{
		"fullname": {"Nino Beridze"},
		"username": {"nino"},
		"email":    {" Nino@Example.com "},
		"phone":    {"555123456"},
		"password": {"secret1"},
		"confirm":  {"secret1"},
	}
}

func TestSignupValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(url.Values)
		wantField string
	}{
		{"valid", func(url.Values) {}, ""},
		{"missing fullname", func(v url.Values) { v.Set("fullname", "") }, "fullname"},
		{"missing username", func(v url.Values) { v.Set("username", " ") }, "username"},
		{"email too short", func(v url.Values) { v.Set("email", "a@b.co") }, "email"},
		{"email malformed", func(v url.Values) { v.Set("email", "not-an-email-address") }, "email"},
		{"email with display name", func(v url.Values) { v.Set("email", "Nino <nino@example.com>") }, "email"},
		{"phone too short", func(v url.Values) { v.Set("phone", "5551") }, "phone"},
		{"password too short", func(v url.Values) { v.Set("password", "abc"); v.Set("confirm", "abc") }, "password"},
		{"confirm mismatch", func(v url.Values) { v.Set("confirm", "secret2") }, "confirm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := signupValues()
			tt.mutate(v)
			errs := ParseSignup(v).Validate()
			if tt.wantField == "" {
				if !errs.Valid() {
					t.Fatalf("expected valid form, got %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestSignupNormalizesEmail(t *testing.T) {
	f := ParseSignup(signupValues())
	if f.Email != "nino@example.com" {
		t.Errorf("Email = %q, want lower-cased and trimmed", f.Email)
	}
}

func TestFeedbackValidate(t *testing.T) {
	valid := url.Values{
		"fullname": {"Visitor"},
		"email":    {"visitor@example.com"},
		"phone":    {"599000111"},
		"body":     {"Great site"},
	}
	if errs := ParseFeedback(valid).Validate(); !errs.Valid() {
		t.Fatalf("expected valid, got %v", errs)
	}

	for _, field := range []string{"fullname", "email", "phone", "body"} {
		v := url.Values{}
		for k, val := range valid {
			v[k] = val
		}
		v.Del(field)
		errs := ParseFeedback(v).Validate()
		if _, ok := errs[field]; !ok {
			t.Errorf("missing %s: expected error, got %v", field, errs)
		}
	}

	short := url.Values{"fullname": {"V"}, "email": {"visitor@example.com"}, "phone": {"599000111"}, "body": {"hey"}}
	if errs := ParseFeedback(short).Validate(); errs["body"] == "" {
		t.Errorf("expected short body error, got %v", errs)
	}
}

func TestSearchValidate(t *testing.T) {
	tests := []struct {
		name  string
		food  string
		gr    string
		valid bool
	}{
		{"valid", "apple", "150", true},
		{"fractional grams", "apple", "12.5", true},
		{"missing food", "", "150", false},
		{"long food", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "150", false},
		{"zero grams", "apple", "0", false},
		{"negative grams", "apple", "-3", false},
		{"not a number", "apple", "lots", false},
		{"missing grams", "apple", "", false},
		{"nan grams", "apple", "NaN", false},
		{"infinite grams", "apple", "Inf", false},
		{"negative infinite grams", "apple", "-Inf", false},
		{"overflowing grams", "apple", "1e309", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ParseSearch(url.Values{"food": {tt.food}, "gr": {tt.gr}}).Validate()
			if errs.Valid() != tt.valid {
				t.Errorf("Valid() = %v, want %v (%v)", errs.Valid(), tt.valid, errs)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if d, ok := ParseDate(" 2024-02-29 "); !ok || d != "2024-02-29" {
		t.Errorf("ParseDate leap day = %q, %v", d, ok)
	}
	for _, bad := range []string{"", "2023-02-29", "29/02/2024", "2024-2-1"} {
		if _, ok := ParseDate(bad); ok {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestLoginValidate(t *testing.T) {
	errs := ParseLogin(url.Values{}).Validate()
	if errs["email"] == "" || errs["password"] == "" {
		t.Errorf("expected both fields required, got %v", errs)
	}
}

func TestSearchGramsMessages(t *testing.T) {
	tests := []struct {
		gr   string
		want string
	}{
		{"", "This field is required."},
		{"NaN", "Grams must be a positive number."},
		{"+Inf", "Grams must be a positive number."},
		{"1e309", "Grams must be a positive number."},
		{"0", "Grams must be a positive number."},
	}
	for _, tt := range tests {
		errs := ParseSearch(url.Values{"food": {"apple"}, "gr": {tt.gr}}).Validate()
		if got := errs["gr"]; got != tt.want {
			t.Errorf("gr=%q: message = %q, want %q", tt.gr, got, tt.want)
		}
		if _, ok := errs["food"]; ok {
			t.Errorf("gr=%q: unexpected food error %v", tt.gr, errs)
		}
	}
}

func TestSignupMessages(t *testing.T) {
	v := signupValues()
	v.Set("email", "")
	v.Set("phone", "123")
	v.Set("confirm", "secret2")
	errs := ParseSignup(v).Validate()

	want := Errors{
		"email":   "This field is required.",
		"phone":   "Please enter a phone number.",
		"confirm": "Passwords must match.",
	}
	if len(errs) != len(want) {
		t.Fatalf("errors = %v, want %v", errs, want)
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("%s: %q, want %q", field, errs[field], msg)
		}
	}
}
