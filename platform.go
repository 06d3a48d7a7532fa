package appcat

import (
	"sort"
	"strings"
)

// Canonical platform tags.
const (
	PlatformMac        = "Mac"
	PlatformIOS        = "iOS"
	PlatformIPadOS     = "iPadOS"
	PlatformWeb        = "Web"
	PlatformAppleTV    = "Apple TV"
	PlatformAppleWatch = "Apple Watch"

	// PlatformMacIOS is the combined value produced for exports listing
	// both Mac and iOS.
	PlatformMacIOS = "Mac,iOS"

	// DefaultPlatform is used when no recognized platform token is present.
	DefaultPlatform = PlatformMac
)

// NormalizePlatform classifies a raw platform attribute from a catalog
// export into one of "Mac,iOS", "Mac", "iOS" or "Web".
//
// Quote characters and one trailing comma are stripped first. The combined
// check runs before the single-platform checks because a combined string
// contains both substrings. Other tokens are dropped when Mac or iOS is
// present, so "Mac,Web" yields "Mac".
func NormalizePlatform(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ",")

	hasMac := strings.Contains(s, PlatformMac)
	hasIOS := strings.Contains(s, PlatformIOS)

	switch {
	case hasMac && hasIOS:
		return PlatformMacIOS
	case hasMac:
		return PlatformMac
	case hasIOS:
		return PlatformIOS
	case strings.Contains(s, PlatformWeb):
		return PlatformWeb
	default:
		return DefaultPlatform
	}
}

// PlatformKeyword maps lowercase page-text tokens to a platform tag.
type PlatformKeyword struct {
	Platform string
	Tokens   []string
}

// DefaultPlatformKeywords returns the keyword table used to detect
// platforms in live application pages.
func DefaultPlatformKeywords() []PlatformKeyword {
	return []PlatformKeyword{
		{Platform: PlatformMac, Tokens: []string{"mac", "macos", "os x"}},
		{Platform: PlatformIOS, Tokens: []string{"ios", "iphone"}},
		{Platform: PlatformIPadOS, Tokens: []string{"ipados", "ipad"}},
		{Platform: PlatformAppleTV, Tokens: []string{"apple tv", "tvos"}},
		{Platform: PlatformAppleWatch, Tokens: []string{"apple watch", "watchos"}},
	}
}

// MatchPlatforms returns every platform whose tokens occur in text,
// compared case-insensitively. The result is sorted and may be empty.
func MatchPlatforms(text string, keywords []PlatformKeyword) []string {
	text = strings.ToLower(text)

	set := make(map[string]struct{})
	for _, kw := range keywords {
		for _, token := range kw.Tokens {
			if strings.Contains(text, token) {
				set[kw.Platform] = struct{}{}
				break
			}
		}
	}

	platforms := make([]string, 0, len(set))
	for p := range set {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}

// DetectPlatforms is MatchPlatforms with the default applied:
// text without any keyword hit yields ["Mac"].
func DetectPlatforms(text string, keywords []PlatformKeyword) []string {
	platforms := MatchPlatforms(text, keywords)
	if len(platforms) == 0 {
		return []string{DefaultPlatform}
	}
	return platforms
}

// JoinPlatforms formats a platform set the way live scrapes store it.
func JoinPlatforms(platforms []string) string {
	return strings.Join(platforms, ", ")
}

// SplitPlatforms splits a stored platform value into its tags. Both the
// export form ("Mac,iOS") and the live form ("Mac, iOS") are accepted.
func SplitPlatforms(s string) []string {
	var platforms []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			platforms = append(platforms, p)
		}
	}
	return platforms
}
