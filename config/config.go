package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port          string
	APIBaseURL    string
	APITimeout    time.Duration
	DBPath        string
	SessionStore  string // sqlite|redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	VerifySession bool
	PollInterval  time.Duration
	SimulateBound float64
	LogLevel      string
	LogFormat     string
	MQTTBroker    string
	MQTTTopic     string
	MQTTClientID  string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:          get("PORT", "8080"),
		APIBaseURL:    get("FARM_API_URL", "http://localhost:5000/api"),
		APITimeout:    duration(get("FARM_API_TIMEOUT", "0s"), 0),
		DBPath:        get("DB_PATH", "kaard.db"),
		SessionStore:  get("SESSION_STORE", "sqlite"),
		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),
		RedisDB:       integer(get("REDIS_DB", "0"), 0),
		VerifySession: get("VERIFY_SESSION", "false") == "true",
		PollInterval:  duration(get("POLL_INTERVAL", "10s"), 10*time.Second),
		SimulateBound: float(get("SIMULATE_BOUND", "0.005"), 0.005),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogFormat:     get("LOG_FORMAT", "console"),
		MQTTBroker:    get("MQTT_BROKER", ""),
		MQTTTopic:     get("MQTT_TOPIC", "kaard/vehicles/+/location"),
		MQTTClientID:  get("MQTT_CLIENT_ID", "kaard-console"),
	}
	return cfg
}

func duration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("[cfg] bad duration %q, using %s", v, def)
		return def
	}
	return d
}

func integer(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func float(v string, def float64) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}
