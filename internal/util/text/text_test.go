package text

import "testing"

func TestCommify(t *testing.T) {
	for in, want := range map[int64]string{
		0:          "0",
		7:          "7",
		999:        "999",
		1000:       "1,000",
		123456:     "123,456",
		1234567:    "1,234,567",
		-1234567:   "-1,234,567",
		1000000000: "1,000,000,000",
	} {
		if got := Commify64(in); got != want {
			t.Errorf("Commify64(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestAvailableMapKeys(t *testing.T) {
	got := AvailableMapKeys(map[string]int{"regex": 0, "chars": 1, "lines": 2})
	if got != "'chars', 'lines', 'regex'" {
		t.Fatalf("unexpected key listing: %s", got)
	}
}
