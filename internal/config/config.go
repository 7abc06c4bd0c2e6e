package config

import (
	"os"
)

type Config struct {
	GoogleAPIKey string
	LogLevel     string
	Debug        bool
	ServiceName  string
	Environment  string
	Hostname     string
	ServerPort   string
}

func LoadConfig() (*Config, error) {
	// An empty key is allowed: the pipeline reports it per-call and the
	// catalog stays empty until a key arrives via a valves update.
	googleAPIKey := os.Getenv("GOOGLE_API_KEY")

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	debug := os.Getenv("DEBUG")
	if debug == "" {
		debug = "false"
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "genai-pipeline"
	}

	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = "genai-pipeline"
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "9099"
	}

	return &Config{
		GoogleAPIKey: googleAPIKey,
		LogLevel:     logLevel,
		Debug:        debug == "true",
		ServiceName:  serviceName,
		Hostname:     hostname,
		Environment:  environment,
		ServerPort:   serverPort,
	}, nil
}
