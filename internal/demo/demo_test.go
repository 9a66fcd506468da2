package demo

import (
	"slices"
	"testing"
)

func TestFizzBuzz(t *testing.T) {
	tests := []struct {
		start, finish int
		want          []string
	}{
		{1, 15, []string{"1", "2", "fizz", "4", "buzz", "fizz", "7", "8", "fizz", "buzz", "11", "fizz", "13", "14", "fizzbuzz"}},
		{5, 3, []string{"buzz", "4", "fizz"}},
		{7, 7, []string{"7"}},
		{-3, 0, []string{"fizz", "-2", "-1", "fizzbuzz"}},
	}

	for _, tt := range tests {
		got := FizzBuzz(tt.start, tt.finish)
		if !slices.Equal(got, tt.want) {
			t.Errorf("FizzBuzz(%d, %d) = %v, want %v", tt.start, tt.finish, got, tt.want)
		}
	}
}

func TestWhoAmI(t *testing.T) {
	if WhoAmI() != identity {
		t.Errorf("WhoAmI() = %q", WhoAmI())
	}
}
