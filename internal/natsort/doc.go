// Package natsort orders strings the way people read numbered filenames:
// embedded digit runs compare by numeric value, everything else compares
// case-insensitively, so "slice2.png" sorts before "slice10.png".
//
// A key is a sequence of tokens, each either a Number (a maximal run of
// ASCII digits) or Text (a maximal run of anything else, lower-cased).
// Keys compare token by token; when a Number meets Text at the same
// position the Number sorts first.
//
// Only ASCII 0-9 start a Number. Other Unicode decimal digits, such as
// Arabic-Indic numerals, are treated as Text, so "img٢" does not sort
// as "img2".
package natsort
