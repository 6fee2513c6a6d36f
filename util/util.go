// Package util is a set of utility variables or methods
package util

import (
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

var SupportedExt = mapset.NewSet(
	".jpeg", ".jpg",
	".png",
	".gif",
	".bmp",
	".webp",
)

// IsSupportedImage reports whether the file name carries an extension from
// SupportedExt. Matching is case-insensitive, so HOLIDAY.JPG counts.
func IsSupportedImage(name string) bool {
	return SupportedExt.Contains(strings.ToLower(filepath.Ext(name)))
}
