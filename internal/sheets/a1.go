package sheets

import "strings"

// ColumnLetter converts a 0-based column index to its A1-notation letters
// (0 -> "A", 25 -> "Z", 26 -> "AA", ...).
func ColumnLetter(index int) string {
	n := index + 1
	var b []byte
	for n > 0 {
		r := (n - 1) % 26
		b = append([]byte{byte('A' + r)}, b...)
		n = (n - r - 1) / 26
	}
	return string(b)
}

// stripSheetName removes the "SheetName!" prefix from a sheet-qualified
// range address, so that ranges reported by the API can be compared with
// the local addresses this package works in.
func stripSheetName(rng string) string {
	if i := strings.IndexByte(rng, '!'); i >= 0 {
		return rng[i+1:]
	}
	return rng
}
