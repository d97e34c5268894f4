package steam

import "fmt"

const (
	ImageStyleCover = "cover"
	ImageStyleIcon  = "icon"
)

// CoverURL returns the portrait library artwork for appID.
func CoverURL(appID int64) string {
	return fmt.Sprintf("https://cdn.cloudflare.steamstatic.com/steam/apps/%d/library_600x900.jpg", appID)
}

// IconURL returns the per-title community icon. An empty hash falls back to the cover.
func IconURL(appID int64, hash string) string {
	if hash == "" {
		return CoverURL(appID)
	}
	return fmt.Sprintf("https://media.steampowered.com/steamcommunity/public/images/apps/%d/%s.jpg", appID, hash)
}

// ImageURL picks the artwork for an owned title according to style.
func ImageURL(style string, g OwnedGame) string {
	if style == ImageStyleIcon {
		return IconURL(g.AppID, g.ImgIconURL)
	}
	return CoverURL(g.AppID)
}
