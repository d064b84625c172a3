package mathx

import "testing"

func TestClampBetween(t *testing.T) {
	if got := Clamp(40, 0, 31); got != 31 {
		t.Fatalf("Clamp = %d", got)
	}
	if got := Clamp(-3, 31, 0); got != 0 {
		t.Fatalf("Clamp swapped bounds = %d", got)
	}
	if !Between(8, 11, 8) || Between(12, 8, 11) {
		t.Fatalf("Between misreports")
	}
}

func TestBaudMaths(t *testing.T) {
	// 25 MHz / 115200 truncates to 217, which runs at 115207 baud.
	div := uint32(25_000_000 / 115200)
	actual := RoundDiv(uint32(25_000_000), div)
	if actual != 115207 {
		t.Fatalf("actual baud = %d", actual)
	}
	if got := ErrorPermille(actual, 115200); got != 0 {
		t.Fatalf("error permille = %d", got)
	}
	if got := ErrorPermille(uint32(110), 100); got != 100 {
		t.Fatalf("error permille = %d, want 100", got)
	}
	if RoundDiv(uint8(7), 0) != 0 {
		t.Fatalf("RoundDiv by zero should be 0")
	}
}
