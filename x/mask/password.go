// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package mask

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Password turns 'password' into 'p******d'
func Password(s string) string {
	n := utf8.RuneCountInString(s)
	if n < 3 {
		return "**" // too short, we can't mask anything
	}
	runes := []rune(s)
	return fmt.Sprintf("%c%s%c", runes[0], strings.Repeat("*", n-2), runes[n-1])
}

// AccountNumber keeps the last four digits of a bank account number.
func AccountNumber(s string) string {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n <= 4 {
		return strings.Repeat("*", n)
	}
	runes := []rune(s)
	return strings.Repeat("*", n-4) + string(runes[n-4:])
}
