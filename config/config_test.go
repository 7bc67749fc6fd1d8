package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/basis-arb/ftxclient/exchanges/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigJSON = `{
	"name": "basis",
	"credentials": {
		"key": "file-key",
		"secret": "file-secret",
		"subaccount": "arb"
	},
	"exchange": {
		"apiURL": "http://127.0.0.1:9999/api",
		"httpTimeout": "30s",
		"rateLimit": 5
	},
	"logging": {
		"level": "ERROR",
		"subloggers": [{"name": "requester", "level": "DEBUG", "output": "stderr"}]
	},
	"strategy": {
		"coin": "BTC",
		"direction": "negative",
		"tolerance": -0.5,
		"maxAttempts": 3,
		"wait": "2s",
		"maxWait": "10s"
	}
}`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), File)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, defaultName, c.Name)
	assert.Equal(t, DefaultAPIURL, c.Exchange.APIURL)
	assert.Equal(t, defaultHTTPTimeout, c.Exchange.HTTPTimeout)
	assert.Zero(t, c.Exchange.RateLimit, "client side throttling should be off by default")
	assert.Equal(t, defaultStrategyAttempts, c.Strategy.MaxAttempts)
	assert.Equal(t, defaultStrategyWait, c.Strategy.Wait)
	assert.Zero(t, c.Strategy.MaxWait)
	require.NotNil(t, c.Logging.Enabled)
	assert.True(t, *c.Logging.Enabled)
	assert.Equal(t, defaultLoggingLevel, c.Logging.Level)
	assert.Equal(t, "[INFO]", c.Logging.AdvancedSettings.Headers.Info)
	creds := c.GetCredentials()
	assert.True(t, creds.IsEmpty())
}

func TestLoadFile(t *testing.T) {
	c, err := Load(writeConfig(t, testConfigJSON))
	require.NoError(t, err)
	assert.Equal(t, "basis", c.Name)
	assert.Equal(t, "http://127.0.0.1:9999/api", c.Exchange.APIURL)
	assert.Equal(t, 30*time.Second, c.Exchange.HTTPTimeout)
	assert.Equal(t, 5, c.Exchange.RateLimit)
	assert.Equal(t, "ERROR", c.Logging.Level)
	require.Len(t, c.Logging.SubLoggers, 1)
	assert.Equal(t, "requester", c.Logging.SubLoggers[0].Name)
	assert.Equal(t, "BTC", c.Strategy.Coin)
	assert.Equal(t, "negative", c.Strategy.Direction)
	assert.Equal(t, -0.5, c.Strategy.Tolerance)
	assert.Equal(t, 3, c.Strategy.MaxAttempts)
	assert.Equal(t, 2*time.Second, c.Strategy.Wait)
	assert.Equal(t, 10*time.Second, c.Strategy.MaxWait)
	assert.Equal(t, account.Credentials{Key: "file-key", Secret: "file-secret", SubAccount: "arb"}, c.GetCredentials())
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("FTX_CREDENTIALS_KEY", "env-key")
	t.Setenv("FTX_CREDENTIALS_SECRET", "env-secret")
	t.Setenv("FTX_CREDENTIALS_SUBACCOUNT", "env sub")
	t.Setenv("FTX_CREDENTIALS_OTPSECRET", "JBSWY3DPEHPK3PXP")
	t.Setenv("FTX_EXCHANGE_HTTPTIMEOUT", "45s")

	c, err := Load(writeConfig(t, testConfigJSON))
	require.NoError(t, err)
	assert.Equal(t, account.Credentials{
		Key:        "env-key",
		Secret:     "env-secret",
		SubAccount: "env sub",
		OTPSecret:  "JBSWY3DPEHPK3PXP",
	}, c.GetCredentials())
	assert.Equal(t, 45*time.Second, c.Exchange.HTTPTimeout)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, errFailureOpeningConfig)
}

func TestLoadRejectsHalfCredentials(t *testing.T) {
	t.Parallel()
	_, err := Load(writeConfig(t, `{"credentials": {"key": "only-a-key"}}`))
	assert.ErrorIs(t, err, account.ErrCredentialsIncomplete)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	var nilConfig *Config
	assert.ErrorIs(t, nilConfig.Validate(), errConfigNil)

	c := &Config{
		Exchange: ExchangeConfig{APIURL: "ftx", HTTPTimeout: 0, RateLimit: -1},
		Strategy: StrategyConfig{MaxAttempts: 0, Wait: -time.Second, Direction: "sideways"},
	}
	err := c.Validate()
	assert.ErrorIs(t, err, errInvalidHTTPTimeout)
	assert.ErrorIs(t, err, errInvalidRateLimit)
	assert.ErrorIs(t, err, errInvalidAPIURL)
	assert.ErrorIs(t, err, errInvalidAttempts)
	assert.ErrorIs(t, err, errInvalidWait)
	assert.ErrorIs(t, err, errInvalidDirection)

	c = &Config{
		Exchange: ExchangeConfig{APIURL: DefaultAPIURL, HTTPTimeout: time.Second},
		Strategy: StrategyConfig{MaxAttempts: 1, Direction: "Positive"},
	}
	assert.NoError(t, c.Validate())
}
