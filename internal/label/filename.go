package label

import (
	"fmt"
	"strings"
)

// StripExt removes the extension after the last dot. A name without a dot
// is returned unchanged.
func StripExt(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return name
	}
	return name[:idx]
}

func splitExt(name string) (stem, ext string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return name, ""
	}
	return name[:idx], name[idx:]
}

// NextImageFilename returns baseName unchanged when it is free, otherwise
// the first "stem(i)ext" variant not in existingNames, with the smallest
// positive i winning.
func NextImageFilename(baseName string, existingNames []string) string {
	taken := make(map[string]bool, len(existingNames))
	for _, name := range existingNames {
		taken[name] = true
	}
	if !taken[baseName] {
		return baseName
	}

	stem, ext := splitExt(baseName)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s(%d)%s", stem, i, ext)
		if !taken[candidate] {
			return candidate
		}
	}
}

// MatchesImage reports whether a stored entry filename resolves to a loaded
// image name: either an exact match or the stored name carrying a suffix
// variant of the image's stem. The stem-prefix rule can false-positive when
// two images share a stem prefix (receipt1.jpg vs receipt10.jpg); that
// behavior is kept as-is.
func MatchesImage(storedName, imageName string) bool {
	return imageName == storedName || strings.HasPrefix(storedName, StripExt(imageName))
}
