package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var conf *Config

// Init loads config.yaml (optional) and then applies environment overrides.
// The JWT signing secret is mandatory: without it every authenticated route
// would be broken, so startup fails closed.
func Init() {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	c := &Config{}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("read config file: %w", err))
		}
	} else if err := v.Unmarshal(c); err != nil {
		panic(fmt.Errorf("unmarshal config file: %w", err))
	}

	if err := envconfig.Process("", c); err != nil {
		panic(fmt.Errorf("process environment config: %w", err))
	}

	applyDefaults(c)

	if strings.TrimSpace(c.JWT.AccessSecret) == "" {
		panic("config: JWT access secret is not set")
	}

	conf = c
}

func applyDefaults(c *Config) {
	if c.Port == "" {
		c.Port = "3001"
	}
	if c.Prefix == "" {
		c.Prefix = "api"
	}
	if c.Mode != ModeRelease {
		c.Mode = ModeDebug
	}
	if c.JWT.AccessExpire <= 0 {
		c.JWT.AccessExpire = 7 * 24 * 60 * 60
	}
	if len(c.Cors.Origins) == 0 {
		c.Cors.Origins = []string{"http://localhost:3000"}
	}
	if c.OTel.ServiceName == "" {
		c.OTel.ServiceName = "campus-discover"
	}
}

func Get() *Config {
	if conf == nil {
		panic("config: not initialized")
	}
	return conf
}
