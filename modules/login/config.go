package login

// Config holds the admin credentials of the login module.
type Config struct {
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin@example.com"`
	// AdminPasswordHash is a bcrypt hash, see `formbind hash`.
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH,required"`
	// HomePath is where a successful sign-in lands.
	HomePath string `env:"LOGIN_HOME_PATH" envDefault:"/"`
}

// DefaultConfig returns the defaults of the env tags. AdminPasswordHash has
// no default.
func DefaultConfig() Config {
	return Config{
		AdminUsername: "admin@example.com",
		HomePath:      "/",
	}
}
