package config

// DefaultAPIURL is the public Ethos API base URL.
const DefaultAPIURL = "https://api.ethos.network"

// DefaultClientID identifies this application to the Ethos API via X-Ethos-Client.
const DefaultClientID = "log-in-with-ethos-example"

// EthosNetworkAppID is the identity provider app ID of Ethos Network, offered
// as the primary cross-app login method.
const EthosNetworkAppID = "cm5l76en107pt1lpl2ve2ocfy"

// Session TTL bounds, in minutes.
const (
	DefaultSessionTTLMinutes = 60
	MinSessionTTLMinutes     = 1
	MaxSessionTTLMinutes     = 24 * 60
)

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.ethos-login",
		Ethos: EthosConfig{
			APIURL:         DefaultAPIURL,
			ClientID:       DefaultClientID,
			TimeoutSeconds: 30,
			RateLimit:      5,
			Burst:          5,
		},
		Session: SessionConfig{
			AppID:      "",
			File:       "",
			TTLMinutes: DefaultSessionTTLMinutes,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Endpoint:    "",
			ServiceName: "ethos-login",
		},
	}
}
