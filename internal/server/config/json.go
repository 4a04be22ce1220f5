package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/brunononogaki/meubonsai-app-v2/internal/flagx"
	"github.com/brunononogaki/meubonsai-app-v2/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "15m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into
// the runtime Config struct which uses time.Duration.
type JsonConfig struct {
	HTTPAddr                        string         `json:"http_addr"`
	DatabaseDSN                     string         `json:"database_dsn"`
	WebserverOrigin                 string         `json:"webserver_origin"`
	EmailFrom                       string         `json:"email_from"`
	SMTPAddr                        string         `json:"smtp_addr"`
	SMTPUser                        string         `json:"smtp_user"`
	SMTPPassword                    string         `json:"smtp_password"`
	BcryptCost                      int            `json:"bcrypt_cost"`
	ActivationTokenValidityDuration timex.Duration `json:"activation_token_validity_duration"`
	SessionValidityDuration         timex.Duration `json:"session_validity_duration"`
	Env                             string         `json:"env"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.HTTPAddr = c.HTTPAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.WebserverOrigin = c.WebserverOrigin
	config.EmailFrom = c.EmailFrom
	config.SMTPAddr = c.SMTPAddr
	config.SMTPUser = c.SMTPUser
	config.SMTPPassword = c.SMTPPassword
	config.BcryptCost = c.BcryptCost
	config.ActivationTokenValidityDuration = time.Duration(c.ActivationTokenValidityDuration.Duration)
	config.SessionValidityDuration = time.Duration(c.SessionValidityDuration.Duration)
	config.Env = c.Env
}
