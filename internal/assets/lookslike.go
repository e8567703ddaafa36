package assets

import "strings"

var assetPrefixes = []string{"assets/", "asset/", "images/", "icons/", "fonts/", "res/"}
var assetSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".ttf", ".otf", ".json"}

// LooksLikeAssetPath recognizes a generated accessor's literal value as an
// asset path by its directory prefix or file extension.
func LooksLikeAssetPath(s string) bool {
	lower := strings.ToLower(s)
	for _, p := range assetPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	for _, suf := range assetSuffixes {
		if strings.HasSuffix(lower, suf) {
			return true
		}
	}
	return false
}

// assetDirectories is the set of directory names a dynamic-hint
// concatenation/interpolation must point into to count as "potential".
var assetDirectories = []string{"assets/", "asset/", "images/", "icons/", "fonts/", "res/"}

// DynamicHintDirectory returns the static directory prefix a string carries
// (from the asset directory name up to the last "/" before any
// interpolation or quote), if it looks like it points into an asset
// directory, else "".
func DynamicHintDirectory(staticPrefix string) (string, bool) {
	lower := strings.ToLower(staticPrefix)
	for _, d := range assetDirectories {
		if idx := strings.Index(lower, d); idx >= 0 {
			rest := staticPrefix[idx:]
			if stop := strings.IndexAny(rest, "$'\""); stop >= 0 {
				rest = rest[:stop]
			}
			return rest[:strings.LastIndex(rest, "/")+1], true
		}
	}
	return "", false
}
