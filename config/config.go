package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/socialnet-labs/backend/pkg/storage"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer APIServerConfigs
	Auth      AuthConfigs
	Session   SessionConfigs
	Storage   storage.S3Configs
	File      FileConfigs
	Redis     RedisConfigs
	Search    SearchConfigs
	Feed      FeedConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type APIServerConfigs struct {
	Host         string
	Port         string
	Cert         string
	Key          string
	DefaultLimit int
	MaxLimit     int
}

func (s *APIServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Secret     string
	Expiration time.Duration
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type FileConfigs struct {
	MaxSize int64
}

type RedisConfigs struct {
	Addr string
}

type SearchConfigs struct {
	IndexDir string
}

type FeedConfigs struct {
	// TrendingWindow and RecommendWindow are trailing windows counted back
	// from now.
	TrendingWindow  time.Duration
	RecommendWindow time.Duration

	PopularLimit        int
	TrendingLimit       int
	SearchLimit         int
	AdvancedSearchLimit int
	RecommendLimit      int

	// DefaultMinViews is the views threshold of advanced search when the
	// client does not give one.
	DefaultMinViews int

	// RecommendMinMembers qualifies an unverified community for the
	// recommended feed.
	RecommendMinMembers int
}

// Default returns the development configuration. Values can be overridden by
// a TOML file (see Load) and, for secrets, by environment variables.
func Default() Configs {
	return Configs{
		Env: "local",
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "socialnet",
			User:     "root",
			Password: os.Getenv("MYSQL_PASSWORD"),
		},
		ApiServer: APIServerConfigs{
			Host:         "0.0.0.0",
			Port:         "8080",
			DefaultLimit: 20,
			MaxLimit:     50,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Secret:     os.Getenv("TOKEN_SECRET"),
				Expiration: 24 * time.Hour,
			},
		},
		Session: SessionConfigs{
			Secret: os.Getenv("SESSION_SECRET"),
			Name:   "session",
		},
		Storage: storage.S3Configs{
			Region:         os.Getenv("S3_REGION"),
			Endpoint:       os.Getenv("S3_ENDPOINT"),
			PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
			AccessKey:      os.Getenv("S3_ACCESS_KEY"),
			SecretKey:      os.Getenv("S3_SECRET_KEY"),
		},
		File: FileConfigs{
			MaxSize: 2 << 20,
		},
		Redis: RedisConfigs{
			Addr: "localhost:6379",
		},
		Search: SearchConfigs{
			IndexDir: "searchindex",
		},
		Feed: FeedConfigs{
			TrendingWindow:      7 * 24 * time.Hour,
			RecommendWindow:     30 * 24 * time.Hour,
			PopularLimit:        10,
			TrendingLimit:       10,
			SearchLimit:         20,
			AdvancedSearchLimit: 20,
			RecommendLimit:      15,
			DefaultMinViews:     10,
			RecommendMinMembers: 50,
		},
	}
}

// Load reads the configuration file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
	}

	return cfg, nil
}
