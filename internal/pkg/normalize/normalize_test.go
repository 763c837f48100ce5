package normalize

import "testing"

func TestEmail(t *testing.T) {
	in := "  Osaro.OKUNDIA@AAU.edu.NG  "
	want := "osaro.okundia@aau.edu.ng"
	got := Email(in)
	if got != want {
		t.Fatalf("normalize.Email(%q) = %q, want %q", in, got, want)
	}
}

func TestEmailAlreadyNormalized(t *testing.T) {
	in := "desk@aau.edu.ng"
	if got := Email(in); got != in {
		t.Fatalf("normalize.Email(%q) = %q, want unchanged", in, got)
	}
}
