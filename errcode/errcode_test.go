package errcode

import (
	"errors"
	"testing"
)

func TestOf(t *testing.T) {
	cases := []struct {
		err  error
		want Code
	}{
		{nil, OK},
		{Timeout, Timeout},
		{&E{C: InvalidPin, Op: "gpio.write"}, InvalidPin},
		{errors.New("boom"), Error},
	}
	for _, c := range cases {
		if got := Of(c.err); got != c.want {
			t.Fatalf("Of(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestWrapKeepsCode(t *testing.T) {
	if Wrap("uart.putc", nil) != nil {
		t.Fatalf("Wrap(nil) should be nil")
	}
	err := Wrap("uart.putc", Timeout)
	if !errors.Is(err, Timeout) {
		t.Fatalf("errors.Is(%v, Timeout) = false", err)
	}
	if got, want := err.Error(), "uart.putc: timeout"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if Of(err) != Timeout {
		t.Fatalf("Of(wrapped) = %q", Of(err))
	}
}

func TestText(t *testing.T) {
	if got := Text(Unsupported); got != "Operation not supported" {
		t.Fatalf("Text(Unsupported) = %q", got)
	}
	if got := Text(Code("weird")); got != "Unknown error" {
		t.Fatalf("Text(weird) = %q", got)
	}
}
