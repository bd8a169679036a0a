package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/todoserver/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-d string   MongoDB connection URI
//	-n string   MongoDB database name
//	-s string   token signing secret
//	-b int      bcrypt cost
//	-l int      auth endpoints rate limit, requests per minute (0 disables)
//
// Only these flags are taken from os.Args (see flagx.FilterArgs), so -c and
// any unknown arguments do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-n", "-s", "-b", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.MongoURI, "d", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.DatabaseName, "n", config.DatabaseName, "MongoDB database name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.IntVar(&config.PasswordHashCost, "b", config.PasswordHashCost, "bcrypt cost")
	fs.IntVar(&config.AuthRateLimit, "l", config.AuthRateLimit, "auth rate limit (requests per minute, 0 disables)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
