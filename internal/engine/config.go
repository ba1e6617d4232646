package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/uhaszYsz/mmomicro/internal/domain"
)

// EnvPrefix - префикс переменных окружения: MMO_PORT, MMO_RULES_MAP_SIZE и т.д.
const EnvPrefix = "MMO"

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно генерации карты и бросков. 0 в файле означает "случайный".
	Seed    int64 `mapstructure:"seed"`
	ShardId uint8 `mapstructure:"shard_id"`

	Port         string        `mapstructure:"port"`
	TickInterval time.Duration `mapstructure:"tick_interval"`

	// ContentPath - YAML с таблицами контента. Пусто - встроенные таблицы.
	ContentPath string `mapstructure:"content_path"`
	// JournalDir - каталог журнала команд. Пусто - журнал выключен.
	JournalDir string `mapstructure:"journal_dir"`

	// AdminSecret - ключ HMAC для JWT админского API. Пусто - API выключен.
	AdminSecret string `mapstructure:"admin_secret"`

	// Bots - сколько ботов создать при старте.
	Bots int `mapstructure:"bots"`

	// Ограничение команд на одно соединение
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`

	Rules domain.Rules `mapstructure:"rules"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:         time.Now().UnixNano(),
		ShardId:      0,
		Port:         "8080",
		TickInterval: 200 * time.Millisecond,
		Bots:         0,
		RateLimit:    5,
		RateBurst:    5,
		Rules:        domain.DefaultRules(),
	}
}

// LoadConfig собирает конфиг: значения по умолчанию, затем файл (если задан),
// затем переменные окружения MMO_*. Файл .env подхватывается, если он есть.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := NewConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv видит только известные ключи, поэтому регистрируем все поля как defaults.
	registerDefaults(v, "", reflect.ValueOf(cfg))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate отсекает значения, с которыми движок не запустится.
func (c Config) Validate() error {
	switch {
	case c.TickInterval <= 0:
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	case c.Rules.MapSize <= 0:
		return fmt.Errorf("rules.map_size must be positive, got %d", c.Rules.MapSize)
	case c.Rules.MaxAttackers <= 0:
		return fmt.Errorf("rules.max_attackers must be positive, got %d", c.Rules.MaxAttackers)
	case c.RateLimit <= 0 || c.RateBurst <= 0:
		return fmt.Errorf("rate_limit and rate_burst must be positive")
	case c.Bots < 0:
		return fmt.Errorf("bots must not be negative")
	}
	return nil
}

func registerDefaults(v *viper.Viper, prefix string, val reflect.Value) {
	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		fv := val.Field(i)
		if fv.Kind() == reflect.Struct {
			registerDefaults(v, key, fv)
			continue
		}
		v.SetDefault(key, fv.Interface())
	}
}
