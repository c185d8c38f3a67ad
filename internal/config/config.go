package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	TransportHTTP = "http"
	TransportMQTT = "mqtt"
)

type Config struct {
	Skill  SkillConfig  `yaml:"skill"`
	Shadow ShadowConfig `yaml:"shadow"`
	Mqtt   MqttConfig   `yaml:"mqtt"`
	Things ThingsConfig `yaml:"things"`
}

type SkillConfig struct {
	// ApplicationID, when set, must match the id the platform sends.
	ApplicationID string `yaml:"applicationId" env:"APPLICATION_ID"`
}

type ShadowConfig struct {
	Transport  string `yaml:"transport" env:"SHADOW_TRANSPORT" env-default:"http"`
	Endpoint   string `yaml:"endpoint" env:"SHADOW_ENDPOINT" env-default:"https://localhost:8443"`
	Token      string `yaml:"token" env:"SHADOW_TOKEN"`
	TimeoutSec int    `yaml:"timeoutSec" env:"SHADOW_TIMEOUT_SEC" env-default:"10"`
}

type MqttConfig struct {
	Host     string `yaml:"host" env:"MQTT_BROKER_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"MQTT_BROKER_PORT" env-default:"1883"`
	Username string `yaml:"username" env:"MQTT_BROKER_USERNAME"`
	Password string `yaml:"password" env:"MQTT_BROKER_PASSWORD"`
	Tls      bool   `yaml:"tls" env:"MQTT_BROKER_TLS" env-default:"false"`
}

type ThingsConfig struct {
	Camera string `yaml:"camera" env:"THING_CAMERA" env-default:"cam0"`
	Sensor string `yaml:"sensor" env:"THING_SENSOR" env-default:"MegaIf1"`
}

// ReadConfig loads the config file named by filename when it exists,
// otherwise only the environment and the defaults apply.
func ReadConfig(filename string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(filename); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", filename, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(filename, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	return &cfg, nil
}
