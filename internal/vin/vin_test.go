package vin

import "testing"

func TestCheckDigitReference(t *testing.T) {
	// ISO 3779 worked example
	if !Validate("1HGCM82633A004352") {
		t.Fatalf("reference VIN must validate")
	}
	if c := CheckDigit("1HGCM82633A004352"); c != '3' {
		t.Fatalf("expected check digit '3', got %q", c)
	}
}

func TestCheckDigitX(t *testing.T) {
	// weighted sum 307, remainder 10, so the check character is X
	if c := CheckDigit("1HGCM826X3A004350"); c != 'X' {
		t.Fatalf("expected check digit 'X', got %q", c)
	}
	if !Validate("1HGCM826X3A004350") {
		t.Fatalf("VIN with X check digit must validate")
	}
}

func TestValidateMismatch(t *testing.T) {
	if Validate("1HGCM82634A004352") {
		t.Fatalf("altered check digit must not validate")
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	cases := []string{
		"",
		"1HGCM82633A00435",    // 16 chars
		"1HGCM82633A0043521",  // 18 chars
		"1HGCM82633A00435I",   // contains I
		"1hgcm82633a004352",   // lowercase is the caller's problem
	}
	for _, c := range cases {
		if Validate(c) {
			t.Fatalf("Validate(%q) = true, want false", c)
		}
	}
}

func TestCheckDigitDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if c := CheckDigit("WVWZZZ1JZ3W386752"); c != CheckDigit("WVWZZZ1JZ3W386752") {
			t.Fatalf("check digit must be deterministic")
		}
	}
}
