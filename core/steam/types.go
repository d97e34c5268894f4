package steam

// OwnedGame is one title from a user's remote library.
type OwnedGame struct {
	AppID           int64  `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int64  `json:"playtime_forever"`
	ImgIconURL      string `json:"img_icon_url"`
}

// AppDetails is the descriptive metadata of a catalog entry.
type AppDetails struct {
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description"`
	HeaderImage      string   `json:"header_image"`
	ReleaseDate      string   `json:"release_date"`
	Developers       []string `json:"developers"`
	Publishers       []string `json:"publishers"`
}

type resolveVanityResponse struct {
	Response struct {
		SteamID string `json:"steamid"`
		Success int    `json:"success"`
		Message string `json:"message"`
	} `json:"response"`
}

type ownedGamesResponse struct {
	Response struct {
		GameCount int         `json:"game_count"`
		Games     []OwnedGame `json:"games"`
	} `json:"response"`
}

type appDetailsEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Name             string   `json:"name"`
		ShortDescription string   `json:"short_description"`
		HeaderImage      string   `json:"header_image"`
		Developers       []string `json:"developers"`
		Publishers       []string `json:"publishers"`
		ReleaseDate      struct {
			ComingSoon bool   `json:"coming_soon"`
			Date       string `json:"date"`
		} `json:"release_date"`
	} `json:"data"`
}
