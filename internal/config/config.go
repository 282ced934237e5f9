package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ServiceConfig *Config

type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
	Consul    ConsulConfig
	Inference InferenceConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	ServiceName    string
	ServiceAddress string
	ServiceID      string
	GinMode        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogDir         string
}

type ConsulConfig struct {
	ConsulAddress string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	Protocol int
}

type RabbitMQConfig struct {
	URI      string
	Exchange string
}

// InferenceConfig points the service at the model-serving endpoints. The
// gesture and speech models run behind their own HTTP APIs; this service
// only ever sees them as remote scoring functions.
type InferenceConfig struct {
	GestureURL   string
	SpeechURL    string
	TranslateURL string
	APIKey       string
	Timeout      time.Duration
}

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ServiceConfig = &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8000"),
			Host:           getEnv("HOST", "0.0.0.0"),
			ServiceName:    getEnv("AI_SERVICE_NAME", "ai-service"),
			ServiceAddress: getEnv("AI_SERVICE_ADDRESS", "ai-service"),
			ServiceID:      getEnv("AI_SERVICE_NAME", "ai-service") + "-" + getEnv("HOSTNAME", "ai"),
			GinMode:        getEnv("GIN_MODE", "debug"),
			ReadTimeout:    getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
			LogDir:         getEnv("LOG_DIR", ""),
		},
		Consul: ConsulConfig{
			ConsulAddress: getEnv("CONSUL_ADDRESS", "consul-server:"+getEnv("CONSUL_PORT", "8500")),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "comunity"),
			Timeout:  getEnvAsDuration("MONGODB_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PWD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Protocol: getEnvAsInt("REDIS_PROTOCOL", 3),
		},
		RabbitMQ: RabbitMQConfig{
			URI:      getEnv("RABBITMQ_URI", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "comunity.events"),
		},
		Inference: InferenceConfig{
			GestureURL:   getEnv("GESTURE_INFERENCE_URL", ""),
			SpeechURL:    getEnv("SPEECH_INFERENCE_URL", ""),
			TranslateURL: getEnv("TRANSLATE_API_URL", ""),
			APIKey:       getEnv("INFERENCE_API_KEY", ""),
			Timeout:      getEnvAsDuration("INFERENCE_TIMEOUT", 120*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("error retrieve int env var %s: %s", key, err)
			return defaultValue
		}
		return intVal
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err != nil {
			log.Printf("error retrieve duration env var %s: %s", key, err)
			return defaultValue
		}
		return d
	}
	return defaultValue
}
