// Package config loads the client configuration from the environment and an optional .env file.
package config
