package novaclick

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ClientConfig is the yaml configuration of a client connection.
type ClientConfig struct {
	Addr     string `mapstructure:"addr"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`

	Compression bool `mapstructure:"compression"`

	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	RWTimeout   time.Duration `mapstructure:"rw_timeout"`
}

// LoadConfig reads a yaml client configuration file.
func LoadConfig(path string) (*ClientConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Options converts the configuration into connection options.
func (c *ClientConfig) Options() Options {
	return Options{
		Addr:        c.Addr,
		Database:    c.Database,
		User:        c.User,
		Password:    c.Password,
		Compression: c.Compression,
		DialTimeout: c.DialTimeout,
		RWTimeout:   c.RWTimeout,
	}
}
