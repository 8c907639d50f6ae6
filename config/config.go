package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "CATALOG_CONFIG_FILE"
	envPrefix         = "CATALOG"
)

type httpServer struct {
	Addr              string        `mapstructure:"addr"`
	HandlerTimeout    time.Duration `mapstructure:"handler_timeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

type database struct {
	ConnectionString   string        `mapstructure:"connection_string"`
	DatabaseName       string        `mapstructure:"database_name"`
	ProductsCollection string        `mapstructure:"products_collection"`
	BrandsCollection   string        `mapstructure:"brands_collection"`
	TypesCollection    string        `mapstructure:"types_collection"`
	ConnectTimeout     time.Duration `mapstructure:"connect_timeout"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	ProductEventsTopic string   `mapstructure:"product_events_topic"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type Config struct {
	LogLevel slog.Level `mapstructure:"log_level"`
	HTTP     httpServer `mapstructure:"http"`
	Database database   `mapstructure:"database"`
	Broker   broker     `mapstructure:"broker"`
	TLS      tlsFiles   `mapstructure:"tls"`
}

// EventsEnabled reports whether product events are published.
func (c Config) EventsEnabled() bool {
	return len(c.Broker.SeedBrokers) != 0
}

// TLSEnabled reports whether broker connections use TLS.
func (c Config) TLSEnabled() bool {
	return c.TLS.CA != ""
}

func (c Config) Validate() error {
	var errs []error

	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	if c.HTTP.HandlerTimeout <= 0 {
		errs = append(errs, errors.New("http.handler_timeout must be positive"))
	}
	if c.Database.ConnectionString == "" {
		errs = append(errs, errors.New("database.connection_string is required"))
	}
	if c.Database.DatabaseName == "" {
		errs = append(errs, errors.New("database.database_name is required"))
	}
	if c.EventsEnabled() {
		if len(c.Broker.SchemaRegistryURLs) == 0 {
			errs = append(errs, errors.New("broker.schema_registry_urls is required with seed brokers"))
		}
		if c.Broker.ProductEventsTopic == "" {
			errs = append(errs, errors.New("broker.product_events_topic is required with seed brokers"))
		}
	}
	if c.TLSEnabled() && (c.TLS.Cert == "" || c.TLS.Key == "") {
		errs = append(errs, errors.New("tls.cert and tls.key are required with tls.ca"))
	}

	return errors.Join(errs...)
}

func Load() Config {
	cfg, err := load(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

func load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
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

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.handler_timeout", 5*time.Second)
	v.SetDefault("http.read_header_timeout", 5*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)

	v.SetDefault("database.connection_string", "")
	v.SetDefault("database.database_name", "CatalogDb")
	v.SetDefault("database.products_collection", "Products")
	v.SetDefault("database.brands_collection", "Brands")
	v.SetDefault("database.types_collection", "Types")
	v.SetDefault("database.connect_timeout", 10*time.Second)

	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.product_events_topic", "catalog-product-events")

	v.SetDefault("tls.ca", "")
	v.SetDefault("tls.cert", "")
	v.SetDefault("tls.key", "")
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file, env only when empty")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q

	HTTP:
	Addr=%q
	HandlerTimeout=%s
	ReadHeaderTimeout=%s
	IdleTimeout=%s

	Database:
	DatabaseName=%q
	ProductsCollection=%q
	BrandsCollection=%q
	TypesCollection=%q
	ConnectTimeout=%s

	Broker:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	ProductEventsTopic=%q
	TLS=%t

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTP.Addr,
		c.HTTP.HandlerTimeout,
		c.HTTP.ReadHeaderTimeout,
		c.HTTP.IdleTimeout,
		c.Database.DatabaseName,
		c.Database.ProductsCollection,
		c.Database.BrandsCollection,
		c.Database.TypesCollection,
		c.Database.ConnectTimeout,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.ProductEventsTopic,
		c.TLSEnabled(),
	)
}
