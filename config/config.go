package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	envPrefix         = "STOREFRONT"
	defaultConfigFile = "config.yaml"
	geminiAPIKeyEnv   = "GEMINI_API_KEY"
	maskedSecret      = "******"
)

const (
	CatalogFixtures = "fixtures"
	CatalogXLSX     = "xlsx"

	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"

	AIGemini = "gemini"
	AINone   = "none"

	NotificationsInbox = "inbox"
	NotificationsKafka = "kafka"
)

type catalog struct {
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
}

type storage struct {
	Driver        string        `mapstructure:"driver"`
	DSN           string        `mapstructure:"dsn"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
	CartKey       string        `mapstructure:"cart_key"`
	WishlistKey   string        `mapstructure:"wishlist_key"`
	SessionIdle   time.Duration `mapstructure:"session_idle"`
}

type ai struct {
	Provider        string        `mapstructure:"provider"`
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	Concurrency     int           `mapstructure:"concurrency"`
	MinInterval     time.Duration `mapstructure:"min_interval"`
	Temperature     float32       `mapstructure:"temperature"`
	Attempts        int           `mapstructure:"attempts"`
	SuggestionLimit int           `mapstructure:"suggestion_limit"`
}

type checkout struct {
	Delay time.Duration `mapstructure:"delay"`
}

type notifications struct {
	Backend  string `mapstructure:"backend"`
	FeedSize int    `mapstructure:"feed_size"`
}

type topics struct {
	StoreEvents string `mapstructure:"store_events"`
}

type consumers struct {
	NotificationsGroup string `mapstructure:"notifications_group"`
}

type tlsFiles struct {
	CAFile   string `mapstructure:"ca_file"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

type sasl struct {
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
	TLS                tlsFiles  `mapstructure:"tls"`
	SASL               sasl      `mapstructure:"sasl"`
}

type Config struct {
	LogLevel       slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr string        `mapstructure:"http_server_addr"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Catalog        catalog       `mapstructure:"catalog"`
	Storage        storage       `mapstructure:"storage"`
	AI             ai            `mapstructure:"ai"`
	Checkout       checkout      `mapstructure:"checkout"`
	Notifications  notifications `mapstructure:"notifications"`
	Broker         broker        `mapstructure:"broker"`
}

// Load reads .env, the config file and the STOREFRONT_* environment, in
// increasing priority. A missing default config file means defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		die(err)
	}

	path, explicit := getConfigFilepath(os.Args)
	cfg, err := load(viper.New(), path, explicit)
	if err != nil {
		die(err)
	}
	return cfg
}

func load(v *viper.Viper, path string, required bool) (Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ai.api_key", envPrefix+"_AI_API_KEY", geminiAPIKeyEnv); err != nil {
		return Config{}, err
	}

	if _, err := os.Stat(path); err == nil || required {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("request_timeout", "10s")

	v.SetDefault("catalog.source", CatalogFixtures)
	v.SetDefault("catalog.path", "")

	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.ttl", "0s")
	v.SetDefault("storage.cart_key", "cartItems")
	v.SetDefault("storage.wishlist_key", "wishlistItems")
	v.SetDefault("storage.session_idle", "30m")

	v.SetDefault("ai.provider", AINone)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.concurrency", 3)
	v.SetDefault("ai.min_interval", "350ms")
	v.SetDefault("ai.temperature", 0.3)
	v.SetDefault("ai.attempts", 3)
	v.SetDefault("ai.suggestion_limit", 4)

	v.SetDefault("checkout.delay", "2s")

	v.SetDefault("notifications.backend", NotificationsInbox)
	v.SetDefault("notifications.feed_size", 20)

	v.SetDefault("broker.seed_brokers", []string{"localhost:9092"})
	v.SetDefault("broker.schema_registry_urls", []string{"localhost:8081"})
	v.SetDefault("broker.topics.store_events", "store-events")
	v.SetDefault("broker.consumers.notifications_group", "notifications")
	v.SetDefault("broker.tls.ca_file", "")
	v.SetDefault("broker.tls.cert_file", "")
	v.SetDefault("broker.tls.key_file", "")
	v.SetDefault("broker.sasl.user", "")
	v.SetDefault("broker.sasl.pass", "")
}

func (c Config) validate() error {
	var errs []error
	check := func(section, value string, allowed ...string) {
		for _, a := range allowed {
			if value == a {
				return
			}
		}
		errs = append(errs, fmt.Errorf(
			"%s: %q is not one of %s", section, value, strings.Join(allowed, ", "),
		))
	}

	check("catalog.source", c.Catalog.Source, CatalogFixtures, CatalogXLSX)
	check("storage.driver", c.Storage.Driver,
		StorageMemory, StorageRedis, StoragePostgres, StorageSQLite)
	check("ai.provider", c.AI.Provider, AIGemini, AINone)
	check("notifications.backend", c.Notifications.Backend,
		NotificationsInbox, NotificationsKafka)

	if c.Catalog.Source == CatalogXLSX && c.Catalog.Path == "" {
		errs = append(errs, errors.New("catalog.path: required for xlsx source"))
	}
	if c.AI.Provider == AIGemini && c.AI.APIKey == "" {
		errs = append(errs, fmt.Errorf("ai.api_key: required for gemini, set %s", geminiAPIKeyEnv))
	}
	return errors.Join(errs...)
}

// getConfigFilepath reports the config file path and whether it was set
// explicitly.
func getConfigFilepath(args []string) (string, bool) {
	cmdLine := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	arg := cmdLine.String("config", defaultConfigFile, "config file")
	_ = cmdLine.Parse(args[1:])

	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env, true
	}
	return *arg, cmdLine.Changed("config")
}

func die(err error) {
	fmt.Printf("failed to load config: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	RequestTimeout=%s

	Catalog:
	Source=%q
	Path=%q

	Storage:
	Driver=%q
	DSN=%q
	RedisAddr=%q
	TTL=%s
	SessionIdle=%s

	AI:
	Provider=%q
	APIKey=%q
	Model=%q
	SuggestionLimit=%d

	Checkout:
	Delay=%s

	Notifications:
	Backend=%q
	FeedSize=%d

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		StoreEvents=%q
	Consumers:
		NotificationsGroup=%q
	SASLUser=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.RequestTimeout,
		c.Catalog.Source,
		c.Catalog.Path,
		c.Storage.Driver,
		mask(c.Storage.DSN),
		c.Storage.RedisAddr,
		c.Storage.TTL,
		c.Storage.SessionIdle,
		c.AI.Provider,
		mask(c.AI.APIKey),
		c.AI.Model,
		c.AI.SuggestionLimit,
		c.Checkout.Delay,
		c.Notifications.Backend,
		c.Notifications.FeedSize,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.StoreEvents,
		c.Broker.Consumers.NotificationsGroup,
		c.Broker.SASL.User,
	)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return maskedSecret
}
