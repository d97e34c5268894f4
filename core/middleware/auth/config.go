package auth

// Config holds bearer token verification settings.
type Config struct {
	// JWTSecret is the HMAC key used to sign and verify tokens.
	JWTSecret string `mapstructure:"jwt_secret" default:""`
	// Issuer is written to minted tokens and required on verified ones when set.
	Issuer string `mapstructure:"issuer" default:"site-manager"`
}
