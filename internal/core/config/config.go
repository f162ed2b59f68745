package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type Log struct {
	Level string
	JSON  bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Limits struct {
	SearchTermMaxLen   int
	ProfileCacheTTLSec int
}

// Relay 目标必须预先配置；调用方只能按名字引用
type Relay struct {
	TimeoutMS int
	Targets   map[string]string `mapstructure:"targets"`
}

type Files struct {
	Root string
}

type Backup struct {
	SourcePath string
	Dir        string
}

type Mail struct {
	Sender string
}

type Audit struct {
	QueueSize int
}

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	DB     DB
	Redis  Redis `mapstructure:"redis"`
	Limits Limits
	Relay  Relay
	Files  Files
	Backup Backup
	Mail   Mail
	Audit  Audit
}

// Load reads the YAML file once at startup. The returned value is never
// mutated afterwards; components receive it (or slices of it) by constructor.
func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("limits.searchtermmaxlen", 128)
	v.SetDefault("limits.profilecachettlsec", 60)
	v.SetDefault("relay.timeoutms", 3000)
	v.SetDefault("audit.queuesize", 1024)

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}
