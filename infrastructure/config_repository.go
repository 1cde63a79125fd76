package infrastructure

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile имя файла настроек рядом с запуском
const DefaultConfigFile = "schedule-parser.yaml"

// Config настройки разбора и окружения
type Config struct {
	Charset      string        `yaml:"charset"`
	TimeColumn   int           `yaml:"time_column"`
	LogLevel     string        `yaml:"log_level"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	ParseTimeout time.Duration `yaml:"parse_timeout"`
	Timezone     string        `yaml:"timezone"`
}

// DefaultConfig настройки, если файла нет или поле не задано
func DefaultConfig() Config {
	return Config{
		Charset:      DefaultCharset,
		TimeColumn:   DefaultTimeColumn,
		LogLevel:     "info",
		CacheTTL:     DefaultCacheTTL,
		ParseTimeout: 10 * time.Second,
		Timezone:     "Europe/Samara",
	}
}

// YAMLConfigRepository читает и сохраняет настройки в YAML-файле
type YAMLConfigRepository struct {
	filename string
	mutex    sync.RWMutex
}

// NewYAMLConfigRepository создает новый экземпляр репозитория
func NewYAMLConfigRepository(filename string) *YAMLConfigRepository {
	return &YAMLConfigRepository{
		filename: filename,
	}
}

// Load загружает настройки; отсутствующий файл даёт настройки по умолчанию
func (r *YAMLConfigRepository) Load() (Config, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	cfg := DefaultConfig()

	data, err := os.ReadFile(r.filename)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("не удалось прочитать файл: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("не удалось распарсить YAML: %w", err)
	}

	return cfg.withDefaults(), nil
}

// Save сохраняет настройки в YAML файл
func (r *YAMLConfigRepository) Save(cfg Config) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать YAML: %w", err)
	}

	if err := os.WriteFile(r.filename, data, 0644); err != nil {
		return fmt.Errorf("не удалось записать файл: %w", err)
	}

	return nil
}

// withDefaults подставляет значения по умолчанию в обнулённые поля
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Charset == "" {
		c.Charset = defaults.Charset
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = defaults.CacheTTL
	}
	if c.ParseTimeout <= 0 {
		c.ParseTimeout = defaults.ParseTimeout
	}
	if c.Timezone == "" {
		c.Timezone = defaults.Timezone
	}
	return c
}
