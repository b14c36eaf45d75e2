package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultTimeZone           = "Africa/Lagos"
	defaultWorkers            = 4
	defaultLockTTL            = 10 * time.Minute
	defaultCommitTimeout      = 10 * time.Second
	defaultSendTimeout        = 15 * time.Second
	defaultWebPushSubject     = "mailto:admin@example.com"
	defaultWebPushTTL         = 24 * 60 * 60
	defaultBlobKey            = "push-store.json"
)

// Storage drivers understood by the persistence providers.
const (
	StorageDriverMemory   = "memory"
	StorageDriverBlob     = "blob"
	StorageDriverPostgres = "postgres"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Storage selects the device store back-end
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Redis backs the run-level lock; optional
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	// Push configures the delivery transports
	Push *PushConfig `json:"push" yaml:"push"`

	// Reminders configures the reminder run
	Reminders *RemindersConfig `json:"reminders" yaml:"reminders"`

	// PubSub configuration for run-request events
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StorageConfig defines where device records live
type StorageConfig struct {
	// Driver is one of memory, blob, postgres
	Driver string `json:"driver" yaml:"driver"`

	// BlobURL is a gocloud bucket URL (file:///var/lib/nudge, gs://bucket, mem://)
	BlobURL string `json:"blobUrl" yaml:"blobUrl"`

	// BlobKey is the object key of the store document
	BlobKey string `json:"blobKey" yaml:"blobKey"`

	// AutoMigrate creates or updates the devices table on start (postgres driver)
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
}

// RedisConfig defines the connection used for the run lock
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// PushConfig groups the delivery transports
type PushConfig struct {
	WebPush  *WebPushConfig  `json:"webPush" yaml:"webPush"`
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// SendTimeout bounds a single transport call
	SendTimeout time.Duration `json:"sendTimeout" yaml:"sendTimeout"`
}

// WebPushConfig holds the VAPID credentials
type WebPushConfig struct {
	PublicKey  string `json:"publicKey" yaml:"publicKey"`
	PrivateKey string `json:"privateKey" yaml:"privateKey"`
	Subject    string `json:"subject" yaml:"subject"`
	TTL        int    `json:"ttl" yaml:"ttl"`
}

// FirebaseConfig defines Firebase configuration for push notifications
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// RemindersConfig configures the reminder run
type RemindersConfig struct {
	// TimeZone is the IANA zone "today" is computed in
	TimeZone string `json:"timeZone" yaml:"timeZone"`

	// Workers bounds how many devices are processed concurrently
	Workers int `json:"workers" yaml:"workers"`

	// Schedule is a cron spec evaluated in TimeZone; empty disables the in-process scheduler
	Schedule string `json:"schedule" yaml:"schedule"`

	// LockTTL bounds how long a crashed run can hold the run lock
	LockTTL time.Duration `json:"lockTtl" yaml:"lockTtl"`

	// CommitTimeout bounds the bookkeeping write of one device
	CommitTimeout time.Duration `json:"commitTimeout" yaml:"commitTimeout"`

	location *time.Location
}

// Location returns the parsed reminder time zone.
func (c *RemindersConfig) Location() *time.Location {
	if c == nil || c.location == nil {
		return time.UTC
	}

	return c.location
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// REMINDERS_TIMEZONE -> reminders.timeZone, aligned with the YAML keys
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyDefaults fills unset values and validates the reminder time zone.
func (cfg *Config) applyDefaults() error {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{}
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StorageDriverMemory
	}
	if cfg.Storage.BlobKey == "" {
		cfg.Storage.BlobKey = defaultBlobKey
	}

	if cfg.Push == nil {
		cfg.Push = &PushConfig{}
	}
	if cfg.Push.SendTimeout <= 0 {
		cfg.Push.SendTimeout = defaultSendTimeout
	}
	if cfg.Push.WebPush != nil {
		if cfg.Push.WebPush.Subject == "" {
			cfg.Push.WebPush.Subject = defaultWebPushSubject
		}
		if cfg.Push.WebPush.TTL <= 0 {
			cfg.Push.WebPush.TTL = defaultWebPushTTL
		}
	}

	if cfg.Reminders == nil {
		cfg.Reminders = &RemindersConfig{}
	}

	return cfg.Reminders.ApplyDefaults()
}

// ApplyDefaults fills unset reminder settings and resolves TimeZone.
func (c *RemindersConfig) ApplyDefaults() error {
	if c.TimeZone == "" {
		c.TimeZone = defaultTimeZone
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.LockTTL <= 0 {
		c.LockTTL = defaultLockTTL
	}
	if c.CommitTimeout <= 0 {
		c.CommitTimeout = defaultCommitTimeout
	}

	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return errors.Wrapf(err, "invalid reminders.timeZone %q", c.TimeZone)
	}
	c.location = loc

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv reads POSTGRES_REPLICAS_{index}_{HOST,PORT,USERNAME,PASSWORD}.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
