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
	Level      string
	JSON       bool
	File       string // 非空则同时写滚动文件
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

// Store 快照存储后端选择
type Store struct {
	Driver string // memory / file / redis / gorm
	Dir    string // file 后端的数据目录
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string // mysql / postgres（gorm 后端用）
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

// Catalog 目录数据来源与模拟延迟
type Catalog struct {
	Path    string // 非空则从 JSON 文件加载，否则用内置目录
	DelayMs int    // 每次查询的人为延迟，0 关闭
}

// Signup 新账号认证策略（见 auth.VerifyPolicy）
type Signup struct {
	VerifyMode  string  `mapstructure:"verify_mode"` // none / all / seeded
	VerifySeed  int64   `mapstructure:"verify_seed"`
	VerifyRatio float64 `mapstructure:"verify_ratio"`
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	Store   Store
	Redis   Redis `mapstructure:"redis"`
	DB      DB
	Catalog Catalog
	Signup  Signup
}

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

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "benefitup")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.admin.host", "0.0.0.0")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.issuer", "benefitup")
	v.SetDefault("jwt.accesstokenttlmin", 720)
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.dir", "./data")
	v.SetDefault("signup.verify_mode", "none")
	v.SetDefault("signup.verify_ratio", 0.7)
}
