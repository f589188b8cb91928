package cluster

import (
	"fmt"
	"os"
	"time"
)

// Well-known in-cluster service ports.
const (
	DefaultS3Port       int32 = 8333
	DefaultFilerPort    int32 = 8888
	DefaultArgoPort     int32 = 2746
	DefaultFeastPort    int32 = 6566
	DefaultValkeyPort   int32 = 6379
	DefaultPostgresPort int32 = 5432
)

// Endpoint is a host:port pair of an in-cluster service.
type Endpoint struct {
	Host string `yaml:"host"`
	Port int32  `yaml:"port"`
}

func (e Endpoint) Addr() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

func (e Endpoint) URL(scheme string) string {
	return fmt.Sprintf("%s://%s:%d", scheme, e.Host, e.Port)
}

// Config holds the endpoints of the external services which
// this repository consumes, and settings of axon's own processes.
//
// Every service here is an external system. Axon only talks to them.
type Config struct {
	S3       Endpoint      `yaml:"s3"`
	Filer    Endpoint      `yaml:"filer"`
	Argo     Endpoint      `yaml:"argo"`
	Feast    Endpoint      `yaml:"feast"`
	Valkey   Endpoint      `yaml:"valkey"`
	Postgres Endpoint      `yaml:"postgres"`
	Gateway  GatewayConfig `yaml:"gateway"`

	// PipelineNamespace is where Argo runs workflows.
	PipelineNamespace string `yaml:"pipelineNamespace"`
}

type GatewayConfig struct {
	Port     int32         `yaml:"port"`
	CacheTTL time.Duration `yaml:"cacheTTL"`

	// Feast feature service queried when a request does not name one.
	FeatureService string `yaml:"featureService"`
}

// Secrets are never written in config files. They come from environment.
type Secrets struct {
	ArgoToken   string
	DBPassword  string
	S3AccessKey string
	S3SecretKey string
}

// SecretsFromEnv reads credentials from the process environment.
//
// Missing variables are left empty. Whether empty credentials are
// acceptable depends on the consumer.
func SecretsFromEnv() Secrets {
	return Secrets{
		ArgoToken:   os.Getenv("ARGO_TOKEN"),
		DBPassword:  os.Getenv("AXON_DB_PASSWORD"),
		S3AccessKey: os.Getenv("AXON_S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("AXON_S3_SECRET_KEY"),
	}
}

// Default returns the endpoints of the standard cluster layout.
func Default() *Config {
	return &Config{
		S3:       Endpoint{Host: "seaweedfs-s3", Port: DefaultS3Port},
		Filer:    Endpoint{Host: "seaweedfs-filer", Port: DefaultFilerPort},
		Argo:     Endpoint{Host: "argo-server", Port: DefaultArgoPort},
		Feast:    Endpoint{Host: "feast-feature-server", Port: DefaultFeastPort},
		Valkey:   Endpoint{Host: "valkey", Port: DefaultValkeyPort},
		Postgres: Endpoint{Host: "postgres", Port: DefaultPostgresPort},
		Gateway: GatewayConfig{
			Port:     8080,
			CacheTTL: 30 * time.Second,
		},
		PipelineNamespace: "pipelines",
	}
}

// DBURI renders the postgres connection string.
//
// Password comes from Secrets, not from the config file.
func (c *Config) DBURI(user string, sec Secrets, database string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s",
		user, sec.DBPassword, c.Postgres.Addr(), database,
	)
}
