// Package ageband maps a child's stated age onto the three fixed reading
// bands used to select age-appropriate content.
package ageband

const (
	Band6to7 = "6-7"
	Band8to9 = "8-9"
	Band10   = "10"
)

// All lists every band, youngest first.
var All = []string{Band6to7, Band8to9, Band10}

// FromAge returns the band for an age in the supported 6-10 range. The second
// return value is false for any other age.
func FromAge(age int) (string, bool) {
	switch {
	case age >= 6 && age <= 7:
		return Band6to7, true
	case age >= 8 && age <= 9:
		return Band8to9, true
	case age == 10:
		return Band10, true
	}
	return "", false
}
