package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tea-network/sbtmarket/types"
)

func validConfig() *Config {
	return &Config{
		listenPort: DefaultAPIPort,
		chainConfig: &ChainConfig{
			ChainId:         11155111,
			JsonRpcUrls:     []string{"https://rpc.example.com"},
			ContractAddress: "0x1111111111111111111111111111111111111111",
		},
		catalogConfig: &CatalogConfig{
			MaxTypeId:         DefaultMaxTypeId,
			Concurrency:       DefaultScanConcurrency,
			ItemTimeout:       DefaultItemTimeout,
			SupplyPolicy:      SupplyPolicyExcludeExhausted,
			OwnerEnumeration:  OwnerEnumerationTokensOfOwner,
			CategoryAttribute: DefaultCategoryAttribute,
			DefaultCategory:   DefaultCategory,
			ModelAttribute:    DefaultModelAttribute,
			IpfsGateway:       DefaultIpfsGateway,
			RefreshInterval:   DefaultRefreshInterval,
			OwnedCacheSize:    DefaultOwnedCacheSize,
		},
		templateConfig: &TemplateConfig{
			Repo:     DefaultTemplateRepo,
			Branch:   DefaultTemplateBranch,
			Path:     DefaultTemplatePath,
			CacheTTL: DefaultTemplateCacheTTL,
		},
		logLevel:              "warn",
		logFormat:             "json",
		queryTimeout:          DefaultQueryTimeout,
		rpcMaxRetries:         DefaultRpcMaxRetries,
		maxConcurrentRequests: DefaultMaxConcurrentRequests,
		txWaitTimeout:         DefaultTxWaitTimeout,
		cacheTTL:              DefaultCacheTTL,
		metricsConfig:         &MetricsConfig{Enabled: true, Path: DefaultMetricsPath, Port: DefaultMetricsPort},
		authConfig:            &AuthConfig{ClientTokens: []string{"client-token-0123456789"}, AdminToken: "admin-token-0123456789"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		field   string
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.listenPort = "70000" }, field: "PORT", wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.logFormat = "xml" }, field: "LOG_FORMAT", wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.logLevel = "trace" }, field: "LOG_LEVEL", wantErr: true},
		{name: "zero query timeout", mutate: func(c *Config) { c.queryTimeout = 0 }, field: "QUERY_TIMEOUT", wantErr: true},
		{name: "negative retries", mutate: func(c *Config) { c.rpcMaxRetries = -1 }, field: "RPC_MAX_RETRIES", wantErr: true},
		{name: "too many concurrent requests", mutate: func(c *Config) { c.maxConcurrentRequests = MaxAllowedConcurrentRequests + 1 }, field: "MAX_CONCURRENT_REQUESTS", wantErr: true},
		{name: "metrics port conflicts", mutate: func(c *Config) { c.metricsConfig.Port = c.listenPort }, field: "METRICS_PORT", wantErr: true},
		{name: "metrics path without slash", mutate: func(c *Config) { c.metricsConfig.Path = "metrics" }, field: "METRICS_PATH", wantErr: true},
		{name: "missing chain id", mutate: func(c *Config) { c.chainConfig.ChainId = 0 }, field: "CHAIN_ID", wantErr: true},
		{name: "missing rpc", mutate: func(c *Config) { c.chainConfig.JsonRpcUrls = nil }, field: "JSON_RPC_URL", wantErr: true},
		{name: "rpc scheme", mutate: func(c *Config) { c.chainConfig.JsonRpcUrls = []string{"ws://rpc"} }, field: "JSON_RPC_URL", wantErr: true},
		{name: "contract not hex", mutate: func(c *Config) { c.chainConfig.ContractAddress = "tea1xyz" }, field: "CONTRACT_ADDRESS", wantErr: true},
		{name: "admin not hex", mutate: func(c *Config) { c.chainConfig.AdminAddress = "admin" }, field: "ADMIN_ADDRESS", wantErr: true},
		{name: "zero ceiling", mutate: func(c *Config) { c.catalogConfig.MaxTypeId = 0 }, field: "MAX_TYPE_ID", wantErr: true},
		{name: "unknown supply policy", mutate: func(c *Config) { c.catalogConfig.SupplyPolicy = "hide" }, field: "SUPPLY_POLICY", wantErr: true},
		{name: "unknown enumeration", mutate: func(c *Config) { c.catalogConfig.OwnerEnumeration = "events" }, field: "OWNER_ENUMERATION", wantErr: true},
		{name: "hide owned without resolve", mutate: func(c *Config) { c.catalogConfig.HideOwnedTypes = true }, field: "HIDE_OWNED_TYPES", wantErr: true},
		{name: "template ttl", mutate: func(c *Config) { c.templateConfig.CacheTTL = 0 }, field: "TEMPLATE_CACHE_TTL", wantErr: true},
		{name: "short client token", mutate: func(c *Config) { c.authConfig.ClientTokens = append(c.authConfig.ClientTokens, "short") }, field: "API_CLIENT_TOKENS", wantErr: true},
		{name: "short admin token", mutate: func(c *Config) { c.authConfig.AdminToken = "admin" }, field: "API_ADMIN_TOKEN", wantErr: true},
		{name: "admin token reused", mutate: func(c *Config) { c.authConfig.AdminToken = c.authConfig.ClientTokens[0] }, field: "API_ADMIN_TOKEN", wantErr: true},
		{name: "no tokens", mutate: func(c *Config) { c.authConfig = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestChainConfig_SignerKey(t *testing.T) {
	cc := ChainConfig{}
	key, err := cc.SignerKey()
	require.NoError(t, err)
	assert.Nil(t, key)

	cc.SignerPrivateKey = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	key, err = cc.SignerKey()
	require.NoError(t, err)
	require.NotNil(t, key)

	cc.SignerPrivateKey = "not-a-key"
	_, err = cc.SignerKey()
	require.Error(t, err)
	assert.True(t, types.IsErrorType(err, types.ErrTypeConfig))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t,
		[]string{"https://a.example", "https://b.example"},
		splitList(" https://a.example/ , ,https://b.example"),
	)
	assert.Nil(t, splitList(""))
}

func TestSplitTokens(t *testing.T) {
	assert.Equal(t,
		[]string{"abc/def+ghi/", "second"},
		splitTokens(" abc/def+ghi/ , ,second"),
	)
	assert.Empty(t, splitTokens(""))
}

func TestAuthConfig_Tokens(t *testing.T) {
	auth := AuthConfig{
		ClientTokens: []string{"client-token-0123456789"},
		AdminToken:   "admin-token-0123456789",
	}
	assert.True(t, auth.ClientEnabled())
	assert.True(t, auth.AdminEnabled())

	assert.True(t, auth.IsClientToken("client-token-0123456789"))
	assert.True(t, auth.IsClientToken("admin-token-0123456789"))
	assert.False(t, auth.IsClientToken("client-token-012345678"))
	assert.False(t, auth.IsClientToken(""))

	assert.True(t, auth.IsAdminToken("admin-token-0123456789"))
	assert.False(t, auth.IsAdminToken("client-token-0123456789"))

	empty := AuthConfig{}
	assert.False(t, empty.ClientEnabled())
	assert.False(t, empty.AdminEnabled())
	assert.False(t, empty.IsAdminToken(""))
	assert.False(t, empty.IsClientToken(""))

	adminOnly := AuthConfig{AdminToken: "admin-token-0123456789"}
	assert.True(t, adminOnly.ClientEnabled())
}

func TestConfig_Getters(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "json", cfg.GetLogFormat())
	cfg.logFormat = "plain"
	assert.Equal(t, "plain", cfg.GetLogFormat())
	assert.Nil(t, cfg.GetSentryConfig())

	cfg.SetQuerySettings(time.Second, 5, 7)
	assert.Equal(t, time.Second, cfg.GetQueryTimeout())
	assert.Equal(t, 5, cfg.GetRpcMaxRetries())
	assert.Equal(t, 7, cfg.GetMaxConcurrentRequests())
}
