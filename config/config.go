package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tea-network/sbtmarket/types"
)

var (
	Version    = "dev"
	CommitHash = "unknown"

	// Singleton instance
	configInstance *Config
	configOnce     sync.Once
)

// Default configuration constants
const (
	// Port settings
	DefaultAPIPort     = "8080"
	DefaultMetricsPort = "9090"
	MinPortNumber      = 1
	MaxPortNumber      = 65535

	// Scan settings
	DefaultMaxTypeId         = 100
	MaxAllowedTypeId         = 100_000
	DefaultScanConcurrency   = 8
	DefaultItemTimeout       = 10 * time.Second
	DefaultCategoryAttribute = "RWA Type"
	DefaultCategory          = "Utility"
	DefaultModelAttribute    = "Model"
	DefaultIpfsGateway       = "https://ipfs.io/ipfs/"
	DefaultRefreshInterval   = time.Minute
	DefaultOwnedCacheSize    = 1024

	// Outbound request settings
	DefaultQueryTimeout          = 5 * time.Second
	DefaultRpcMaxRetries         = 2
	DefaultMaxConcurrentRequests = 50
	MaxAllowedConcurrentRequests = 1000
	DefaultTxWaitTimeout         = 2 * time.Minute

	// API response cache
	DefaultCacheTTL = time.Second

	// Template settings
	DefaultTemplateRepo     = "MrThygesen/teanet"
	DefaultTemplateBranch   = "main"
	DefaultTemplatePath     = "data"
	DefaultTemplateCacheTTL = 5 * time.Minute

	// Metrics settings
	DefaultMetricsPath = "/metrics"

	// Default environment
	DefaultEnvironment = "local"
)

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
	Port    string `json:"port"`
}

// CORSConfig controls cross origin access to the API
type CORSConfig struct {
	Enabled          bool     `json:"enabled"`
	AllowOrigin      []string `json:"allow_origin"`
	AllowMethods     []string `json:"allow_methods"`
	AllowHeaders     []string `json:"allow_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	ExposeHeaders    []string `json:"expose_headers"`
	MaxAge           int      `json:"max_age"`
}

// SentryConfig contains configuration for Sentry integration
type SentryConfig struct {
	DSN              string  `json:"dsn"`
	SampleRate       float64 `json:"sample_rate"`
	TracesSampleRate float64 `json:"traces_sample_rate"`
	Environment      string  `json:"environment"`
}

func SetBuildInfo(v, commit string) {
	Version = v
	CommitHash = commit
}

type Config struct {
	listenPort            string
	chainConfig           *ChainConfig
	catalogConfig         *CatalogConfig
	templateConfig        *TemplateConfig
	logLevel              string
	logFormat             string
	queryTimeout          time.Duration
	rpcMaxRetries         int
	maxConcurrentRequests int
	txWaitTimeout         time.Duration
	cacheTTL              time.Duration // for api only
	metricsConfig         *MetricsConfig
	corsConfig            *CORSConfig
	authConfig            *AuthConfig
	sentryConfig          *SentryConfig
}

func setDefaults() {
	viper.SetDefault("PORT", DefaultAPIPort)
	viper.SetDefault("LOG_LEVEL", "warn")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("QUERY_TIMEOUT", DefaultQueryTimeout)
	viper.SetDefault("RPC_MAX_RETRIES", DefaultRpcMaxRetries)
	viper.SetDefault("MAX_CONCURRENT_REQUESTS", DefaultMaxConcurrentRequests)
	viper.SetDefault("TX_WAIT_TIMEOUT", DefaultTxWaitTimeout)
	viper.SetDefault("API_CACHE_TTL", DefaultCacheTTL)
	viper.SetDefault("ENVIRONMENT", DefaultEnvironment)

	viper.SetDefault("MAX_TYPE_ID", DefaultMaxTypeId)
	viper.SetDefault("SCAN_CONCURRENCY", DefaultScanConcurrency)
	viper.SetDefault("ITEM_TIMEOUT", DefaultItemTimeout)
	viper.SetDefault("SUPPLY_POLICY", string(SupplyPolicyExcludeExhausted))
	viper.SetDefault("OWNER_ENUMERATION", string(OwnerEnumerationTokensOfOwner))
	viper.SetDefault("RESOLVE_TOKEN_TYPES", false)
	viper.SetDefault("HIDE_OWNED_TYPES", false)
	viper.SetDefault("CATEGORY_ATTRIBUTE", DefaultCategoryAttribute)
	viper.SetDefault("DEFAULT_CATEGORY", DefaultCategory)
	viper.SetDefault("MODEL_ATTRIBUTE", DefaultModelAttribute)
	viper.SetDefault("IPFS_GATEWAY", DefaultIpfsGateway)
	viper.SetDefault("REFRESH_INTERVAL", DefaultRefreshInterval)
	viper.SetDefault("OWNED_CACHE_SIZE", DefaultOwnedCacheSize)

	viper.SetDefault("TEMPLATE_REPO", DefaultTemplateRepo)
	viper.SetDefault("TEMPLATE_BRANCH", DefaultTemplateBranch)
	viper.SetDefault("TEMPLATE_PATH", DefaultTemplatePath)
	viper.SetDefault("TEMPLATE_CACHE_TTL", DefaultTemplateCacheTTL)

	viper.SetDefault("CORS_ENABLED", true)
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("CORS_ALLOW_METHODS", "GET,POST,OPTIONS")
	viper.SetDefault("CORS_ALLOW_HEADERS", "Origin,Content-Type,Accept,Authorization")
	viper.SetDefault("CORS_ALLOW_CREDENTIALS", false)
	viper.SetDefault("CORS_EXPOSE_HEADERS", "")
	viper.SetDefault("CORS_MAX_AGE", 0)

	viper.SetDefault("API_CLIENT_TOKENS", "")
	viper.SetDefault("API_ADMIN_TOKEN", "")

	viper.SetDefault("METRICS_ENABLED", false)
	viper.SetDefault("METRICS_PATH", DefaultMetricsPath)
	viper.SetDefault("METRICS_PORT", DefaultMetricsPort)

	// Sentry defaults
	viper.SetDefault("SENTRY_DSN", "")
	viper.SetDefault("SENTRY_SAMPLE_RATE", 0.01)
	viper.SetDefault("SENTRY_TRACES_SAMPLE_RATE", 0.01)

	//  CHAIN_ID, JSON_RPC_URL and CONTRACT_ADDRESS have no defaults
}

func GetConfig() (*Config, error) {
	var err error

	configOnce.Do(func() {
		configInstance, err = loadConfig()
	})

	return configInstance, err
}

func loadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// just log without panic, local testing purpose only
		fmt.Fprintln(os.Stderr, "No .env file found")
	}
	viper.AutomaticEnv()
	setDefaults()

	cc := &ChainConfig{
		ChainId:          viper.GetInt64("CHAIN_ID"),
		JsonRpcUrls:      splitList(viper.GetString("JSON_RPC_URL")),
		ContractAddress:  viper.GetString("CONTRACT_ADDRESS"),
		AdminAddress:     viper.GetString("ADMIN_ADDRESS"),
		SignerPrivateKey: viper.GetString("SIGNER_PRIVATE_KEY"),
		Environment:      viper.GetString("ENVIRONMENT"),
	}

	config := &Config{
		listenPort:  viper.GetString("PORT"),
		chainConfig: cc,
		catalogConfig: &CatalogConfig{
			MaxTypeId:         viper.GetUint64("MAX_TYPE_ID"),
			Concurrency:       viper.GetInt("SCAN_CONCURRENCY"),
			ItemTimeout:       viper.GetDuration("ITEM_TIMEOUT"),
			SupplyPolicy:      SupplyPolicy(viper.GetString("SUPPLY_POLICY")),
			OwnerEnumeration:  OwnerEnumeration(viper.GetString("OWNER_ENUMERATION")),
			ResolveTokenTypes: viper.GetBool("RESOLVE_TOKEN_TYPES"),
			HideOwnedTypes:    viper.GetBool("HIDE_OWNED_TYPES"),
			CategoryAttribute: viper.GetString("CATEGORY_ATTRIBUTE"),
			DefaultCategory:   viper.GetString("DEFAULT_CATEGORY"),
			ModelAttribute:    viper.GetString("MODEL_ATTRIBUTE"),
			IpfsGateway:       viper.GetString("IPFS_GATEWAY"),
			RefreshInterval:   viper.GetDuration("REFRESH_INTERVAL"),
			OwnedCacheSize:    viper.GetInt("OWNED_CACHE_SIZE"),
		},
		templateConfig: &TemplateConfig{
			Repo:        viper.GetString("TEMPLATE_REPO"),
			Branch:      viper.GetString("TEMPLATE_BRANCH"),
			Path:        viper.GetString("TEMPLATE_PATH"),
			GithubToken: viper.GetString("GITHUB_TOKEN"),
			CacheTTL:    viper.GetDuration("TEMPLATE_CACHE_TTL"),
		},
		logLevel:              viper.GetString("LOG_LEVEL"),
		logFormat:             viper.GetString("LOG_FORMAT"),
		queryTimeout:          viper.GetDuration("QUERY_TIMEOUT"),
		rpcMaxRetries:         viper.GetInt("RPC_MAX_RETRIES"),
		maxConcurrentRequests: viper.GetInt("MAX_CONCURRENT_REQUESTS"),
		txWaitTimeout:         viper.GetDuration("TX_WAIT_TIMEOUT"),
		cacheTTL:              viper.GetDuration("API_CACHE_TTL"),
		metricsConfig: &MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
			Path:    viper.GetString("METRICS_PATH"),
			Port:    viper.GetString("METRICS_PORT"),
		},
		corsConfig: &CORSConfig{
			Enabled:          viper.GetBool("CORS_ENABLED"),
			AllowOrigin:      splitList(viper.GetString("CORS_ALLOW_ORIGINS")),
			AllowMethods:     splitList(viper.GetString("CORS_ALLOW_METHODS")),
			AllowHeaders:     splitList(viper.GetString("CORS_ALLOW_HEADERS")),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			ExposeHeaders:    splitList(viper.GetString("CORS_EXPOSE_HEADERS")),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
		authConfig: &AuthConfig{
			ClientTokens: splitTokens(viper.GetString("API_CLIENT_TOKENS")),
			AdminToken:   strings.TrimSpace(viper.GetString("API_ADMIN_TOKEN")),
		},
		sentryConfig: &SentryConfig{
			DSN:              viper.GetString("SENTRY_DSN"),
			SampleRate:       viper.GetFloat64("SENTRY_SAMPLE_RATE"),
			TracesSampleRate: viper.GetFloat64("SENTRY_TRACES_SAMPLE_RATE"),
			Environment:      viper.GetString("ENVIRONMENT"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c Config) GetListenPort() string {
	return c.listenPort
}

// SetChainConfig assigns the chain config for testing purposes.
func (c *Config) SetChainConfig(chainCfg *ChainConfig) {
	c.chainConfig = chainCfg
}

func (c Config) GetChainConfig() *ChainConfig {
	return c.chainConfig
}

func (c Config) GetChainId() int64 {
	return c.chainConfig.ChainId
}

// SetCatalogConfig assigns the catalog config for testing purposes.
func (c *Config) SetCatalogConfig(catalogCfg *CatalogConfig) {
	c.catalogConfig = catalogCfg
}

func (c Config) GetCatalogConfig() *CatalogConfig {
	return c.catalogConfig
}

// SetTemplateConfig assigns the template config for testing purposes.
func (c *Config) SetTemplateConfig(templateCfg *TemplateConfig) {
	c.templateConfig = templateCfg
}

func (c Config) GetTemplateConfig() *TemplateConfig {
	return c.templateConfig
}

func (c Config) GetCacheTTL() time.Duration {
	return c.cacheTTL
}

func (c Config) GetSentryConfig() *SentryConfig {
	if c.sentryConfig == nil || c.sentryConfig.DSN == "" {
		return nil
	}
	return c.sentryConfig
}

func (c Config) GetLogLevel() slog.Level {
	switch c.logLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func (c Config) GetQueryTimeout() time.Duration {
	return c.queryTimeout
}

func (c Config) GetRpcMaxRetries() int {
	return c.rpcMaxRetries
}

func (c Config) GetMaxConcurrentRequests() int {
	return c.maxConcurrentRequests
}

// SetQuerySettings assigns outbound request settings for testing purposes.
func (c *Config) SetQuerySettings(timeout time.Duration, maxRetries, maxConcurrent int) {
	c.queryTimeout = timeout
	c.rpcMaxRetries = maxRetries
	c.maxConcurrentRequests = maxConcurrent
}

func (c Config) GetTxWaitTimeout() time.Duration {
	return c.txWaitTimeout
}

func (c Config) GetMetricsConfig() *MetricsConfig {
	return c.metricsConfig
}

// SetCORSConfig assigns the CORS config for testing purposes.
func (c *Config) SetCORSConfig(corsCfg *CORSConfig) {
	c.corsConfig = corsCfg
}

func (c Config) GetCORSConfig() *CORSConfig {
	return c.corsConfig
}

// SetAuthConfig assigns the API tokens for testing purposes.
func (c *Config) SetAuthConfig(authCfg *AuthConfig) {
	c.authConfig = authCfg
}

// GetAuthConfig never returns nil; a missing config disables the
// mutating routes.
func (c Config) GetAuthConfig() *AuthConfig {
	if c.authConfig == nil {
		return &AuthConfig{}
	}
	return c.authConfig
}

func (c Config) GetLogFormat() string {
	if c.logFormat == "json" {
		return "json"
	}
	return "plain"
}

func (c Config) Validate() error {
	if err := c.validatePort(); err != nil {
		return err
	}
	if err := c.validateLogSettings(); err != nil {
		return err
	}
	if err := c.validateNumericSettings(); err != nil {
		return err
	}
	if err := c.validateMetricsConfig(); err != nil {
		return err
	}
	if err := c.validateSubConfigs(); err != nil {
		return err
	}
	return nil
}

// validatePort validates the listen port configuration
func (c Config) validatePort() error {
	if len(c.listenPort) == 0 {
		return types.NewValidationError("PORT", "required field is missing")
	}
	if port, err := strconv.Atoi(c.listenPort); err != nil || port < MinPortNumber || port > MaxPortNumber {
		return types.NewValidationError("PORT", fmt.Sprintf("must be a valid port number (%d-%d)", MinPortNumber, MaxPortNumber))
	}
	return nil
}

// validateLogSettings validates log format and level configuration
func (c Config) validateLogSettings() error {
	switch c.logFormat {
	case "json", "plain":
		break
	default:
		return types.NewValidationError("LOG_FORMAT", fmt.Sprintf("invalid value '%s', must be 'json' or 'plain'", c.logFormat))
	}

	switch c.logLevel {
	case "debug", "info", "warn", "error":
		break
	default:
		return types.NewValidationError("LOG_LEVEL", fmt.Sprintf("invalid value '%s', must be one of: debug, info, warn, error", c.logLevel))
	}
	return nil
}

// validateNumericSettings validates all numeric configuration values
func (c Config) validateNumericSettings() error {
	if c.cacheTTL < 0 {
		return types.NewValidationError("API_CACHE_TTL", "must be non-negative")
	}
	if c.queryTimeout <= 0 {
		return types.NewValidationError("QUERY_TIMEOUT", "must be positive")
	}
	if c.rpcMaxRetries < 0 {
		return types.NewValidationError("RPC_MAX_RETRIES", "must be non-negative")
	}
	if c.maxConcurrentRequests < 1 {
		return types.NewValidationError("MAX_CONCURRENT_REQUESTS", "must be at least 1")
	}
	if c.maxConcurrentRequests > MaxAllowedConcurrentRequests {
		return types.NewInvalidValueError("MAX_CONCURRENT_REQUESTS", fmt.Sprintf("%d", c.maxConcurrentRequests), fmt.Sprintf("must not exceed %d", MaxAllowedConcurrentRequests))
	}
	if c.txWaitTimeout <= 0 {
		return types.NewValidationError("TX_WAIT_TIMEOUT", "must be positive")
	}
	return nil
}

// validateMetricsConfig validates metrics configuration
func (c Config) validateMetricsConfig() error {
	if c.metricsConfig != nil && c.metricsConfig.Enabled {
		if port, err := strconv.Atoi(c.metricsConfig.Port); err != nil || port < MinPortNumber || port > MaxPortNumber {
			return types.NewValidationError("METRICS_PORT", fmt.Sprintf("must be a valid port number (%d-%d)", MinPortNumber, MaxPortNumber))
		}
		if c.metricsConfig.Port == c.listenPort {
			return types.NewValidationError("METRICS_PORT", fmt.Sprintf("metrics port %s conflicts with API port", c.metricsConfig.Port))
		}
		if c.metricsConfig.Path == "" || c.metricsConfig.Path[0] != '/' {
			return types.NewValidationError("METRICS_PATH", "must start with '/'")
		}
	}
	return nil
}

// validateSubConfigs validates nested configuration objects
func (c Config) validateSubConfigs() error {
	if err := c.chainConfig.Validate(); err != nil {
		return err
	}
	if err := c.catalogConfig.Validate(); err != nil {
		return err
	}
	if err := c.templateConfig.Validate(); err != nil {
		return err
	}
	if err := c.GetAuthConfig().Validate(); err != nil {
		return err
	}
	return nil
}
