package models

import "strings"

// Platform identifies a social network a post can target.
type Platform string

const (
	PlatformInstagram Platform = "Instagram"
	PlatformFacebook  Platform = "Facebook"
	PlatformPinterest Platform = "Pinterest"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{PlatformInstagram, PlatformFacebook, PlatformPinterest}

// ParsePlatform resolves a case-insensitive platform name.
func ParsePlatform(s string) (Platform, bool) {
	for _, p := range Platforms {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	_, ok := ParsePlatform(string(p))
	return ok
}

func (p Platform) String() string { return string(p) }
