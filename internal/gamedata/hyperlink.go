package gamedata

import (
	"fmt"
	"regexp"
	"strings"
)

// Item hyperlinks arrive as decorated tokens like
// |cff9d9d9d|Hitem:3770::::::::20:257::::::|h[Tough Jerky]|h|r
// The display name is the bracketed text between |h markers.
var (
	linkNameRe    = regexp.MustCompile(`\|h\[([^\]]*)\]\|h`)
	bracketNameRe = regexp.MustCompile(`\[([^\]]*)\]`)
)

// ItemName extracts the display name from a hyperlink token. When the
// token does not match the link pattern the raw string is returned
// unchanged so plain item names still render.
func ItemName(link string) string {
	if m := linkNameRe.FindStringSubmatch(link); m != nil && m[1] != "" {
		return m[1]
	}
	if m := bracketNameRe.FindStringSubmatch(link); m != nil && m[1] != "" {
		return m[1]
	}
	return link
}

// ItemLabel resolves a bag slot to a display label: hyperlink name when
// present, otherwise a synthesized label from the bare item id.
func ItemLabel(hyperlink string, itemID int64) string {
	if hyperlink != "" {
		return ItemName(hyperlink)
	}
	if itemID > 0 {
		return fmt.Sprintf("Item #%d", itemID)
	}
	return ""
}

// Slug builds the player@realm composite key used to group a profile's
// records.
func Slug(player, realm string) string {
	return player + "@" + realm
}

// SlugKey is the case-insensitive form of Slug used for matching.
func SlugKey(player, realm string) string {
	return strings.ToLower(Slug(player, realm))
}
