package config

import (
	"flag"
	"os"
	"time"

	"github.com/brunononogaki/meubonsai-app-v2/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3001")
//	-d string   PostgreSQL DSN
//	-o string   webserver origin for activation links
//	-f string   From header for outgoing mail
//	-m string   SMTP relay address (host:port)
//	-u string   SMTP user
//	-p string   SMTP password
//	-w int      bcrypt work factor
//	-t int      activation token validity, minutes
//	-s int      session validity, hours
//	-e string   environment name ("development" or "production")
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes
//     using flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers and then converted to
//     time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-o", "-f", "-m", "-u", "-p", "-w", "-t", "-s", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.WebserverOrigin, "o", config.WebserverOrigin, "webserver origin")
	fs.StringVar(&config.EmailFrom, "f", config.EmailFrom, "email From header")
	fs.StringVar(&config.SMTPAddr, "m", config.SMTPAddr, "SMTP relay address")
	fs.StringVar(&config.SMTPUser, "u", config.SMTPUser, "SMTP user")
	fs.StringVar(&config.SMTPPassword, "p", config.SMTPPassword, "SMTP password")
	fs.IntVar(&config.BcryptCost, "w", config.BcryptCost, "bcrypt work factor")

	activationTokenValidity := fs.Int("t", int(config.ActivationTokenValidityDuration.Minutes()), "activation_token_validity_duration (in minutes)")
	sessionValidity := fs.Int("s", int(config.SessionValidityDuration.Hours()), "session_validity_duration (in hours)")

	fs.StringVar(&config.Env, "e", config.Env, "environment name")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ActivationTokenValidityDuration = time.Duration(*activationTokenValidity) * time.Minute
	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Hour
}
