package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ndbaker1/tanks/internal/game"
)

// Config хранит параметры запуска сервера.
type Config struct {
	// Port - HTTP порт сервера
	Port string `yaml:"port"`
	// TickRate - частота тиков симуляции в секунду
	TickRate int `yaml:"tick_rate"`
	// MapFile - путь к файлу описаний карт; пусто - встроенный набор
	MapFile string `yaml:"map_file"`
	// MapName - карта, на которой создаются сессии
	MapName string `yaml:"map_name"`
}

// NewConfig создает конфиг по умолчанию.
func NewConfig() Config {
	return Config{
		Port:     "8000",
		TickRate: game.TickRate,
		MapName:  game.DefaultMapName,
	}
}

// LoadConfig собирает конфиг: дефолты, затем YAML-файл (если задан),
// затем переменные окружения. Окружение побеждает файл.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if cfg.TickRate <= 0 {
		return cfg, fmt.Errorf("tick_rate must be positive, got %d", cfg.TickRate)
	}

	return cfg, nil
}
