package demo

import "strconv"

const identity = "cashflows"

// WhoAmI returns a fixed label identifying the build.
func WhoAmI() string {
	return identity
}

// FizzBuzz returns start..finish inclusive, counting down when finish is
// below start. Multiples of 3 become "fizz", of 5 "buzz" and of both
// "fizzbuzz".
func FizzBuzz(start, finish int) []string {
	step := 1
	if finish < start {
		step = -1
	}

	out := make([]string, 0, (finish-start)*step+1)
	for n := start; n != finish+step; n += step {
		s := ""
		if n%3 == 0 {
			s += "fizz"
		}
		if n%5 == 0 {
			s += "buzz"
		}
		if s == "" {
			s = strconv.Itoa(n)
		}
		out = append(out, s)
	}
	return out
}
