package validate

import "testing"

func TestEmail(t *testing.T) {
	valid := []string{"ann@x.com", "a.b+c@example.co.uk"}
	for _, email := range valid {
		if !Email(email) {
			t.Fatalf("expected %s to be valid", email)
		}
	}
	invalid := []string{"", "ann", "ann@", "@x.com", "ann @x.com"}
	for _, email := range invalid {
		if Email(email) {
			t.Fatalf("expected %s to be invalid", email)
		}
	}
}

func TestDate(t *testing.T) {
	valid := []string{"2026-01-31", "2024-02-29"}
	for _, date := range valid {
		if !Date(date) {
			t.Fatalf("expected %s to be valid", date)
		}
	}
	invalid := []string{"", "2026-1-31", "31-01-2026", "2026-02-30", "2026-01-31T00:00:00", "not a date"}
	for _, date := range invalid {
		if Date(date) {
			t.Fatalf("expected %s to be invalid", date)
		}
	}
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"  plain  ":                  "plain",
		"<b>bold</b>":                "bold",
		"<script>alert(1)</script>x": "alert(1)x",
		"a & b":                      "a &amp; b",
	}
	for input, expect := range cases {
		if got := Sanitize(input); got != expect {
			t.Fatalf("Sanitize(%q) = %q, expected %q", input, got, expect)
		}
	}
}

func TestSortColumnFallback(t *testing.T) {
	allowed := []string{"name", "student_id", "email"}
	if got := SortColumn("email", "name", allowed); got != "email" {
		t.Fatalf("expected email, got %s", got)
	}
	if got := SortColumn("password; DROP TABLE students", "name", allowed); got != "name" {
		t.Fatalf("expected fallback to name, got %s", got)
	}
	if got := SortColumn("", "name", allowed); got != "name" {
		t.Fatalf("expected fallback to name for empty sort, got %s", got)
	}
}

func TestOrder(t *testing.T) {
	if got := Order("desc"); got != "DESC" {
		t.Fatalf("expected DESC, got %s", got)
	}
	if got := Order("DESC"); got != "DESC" {
		t.Fatalf("expected DESC, got %s", got)
	}
	for _, input := range []string{"", "asc", "sideways", "desc; --"} {
		if got := Order(input); got != "ASC" {
			t.Fatalf("Order(%q) = %s, expected ASC", input, got)
		}
	}
}
