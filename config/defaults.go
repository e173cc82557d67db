package config

import "time"

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/timechat",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			RequestTimeout: 15 * time.Second,
			PollInterval:   30 * time.Second,
		},
		UI: UIConfig{
			RevealDelay:     time.Second,
			ApologyDelay:    500 * time.Millisecond,
			TransitionDelay: 300 * time.Millisecond,
			TypingInterval:  500 * time.Millisecond,
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# timechat System Configuration
# Location: ~/.config/timechat/settings.toml
# This file uses TOML format: https://toml.io

# Directory where user config, keybindings and logs are stored
data_directory = "~/.local/share/timechat"
`
}

func GenerateUserConfigTemplate() string {
	return `# timechat User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io
# Durations use Go syntax: "500ms", "1s", "30s"

[api]
# Time lookup service (GET / for health, POST /time for lookups)
base_url = "` + DefaultBaseURL + `"

# Give up on a single request after this long
request_timeout = "15s"

# How often the connection indicator is refreshed
poll_interval = "30s"

[ui]
# Pause before a response is revealed so the typing indicator is visible
reveal_delay = "1s"

# Same pause for the apology shown when a lookup fails
apology_delay = "500ms"

# Delay used when picking a prompt card or starting a new chat
transition_delay = "300ms"

# Typing indicator animation speed
typing_interval = "500ms"

[telemetry]
# Write OpenTelemetry traces and metrics to <data_directory>/traces.log and metrics.log
traces = false
`
}
