package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/basis-arb/ftxclient/exchanges/account"
	"github.com/basis-arb/ftxclient/log"
	"github.com/spf13/viper"
)

// Load reads the configuration from the optional file at path, applies FTX_
// prefixed environment overrides and fills in defaults. Nested keys map to
// environment variables with dots replaced by underscores, for example
// credentials.secret is read from FTX_CREDENTIALS_SECRET.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w %s: %w", errFailureOpeningConfig, path, err)
		}
		log.Debugf(log.ConfigMgr, "Using config file %s", v.ConfigFileUsed())
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("name", defaultName)

	v.SetDefault("credentials.key", "")
	v.SetDefault("credentials.secret", "")
	v.SetDefault("credentials.subaccount", "")
	v.SetDefault("credentials.otpSecret", "")

	v.SetDefault("exchange.apiURL", DefaultAPIURL)
	v.SetDefault("exchange.httpTimeout", defaultHTTPTimeout)
	v.SetDefault("exchange.rateLimit", 0)
	v.SetDefault("exchange.verbose", false)
	v.SetDefault("exchange.httpDebugging", false)

	v.SetDefault("logging.enabled", true)
	v.SetDefault("logging.level", defaultLoggingLevel)
	v.SetDefault("logging.output", defaultLoggingOutput)
	v.SetDefault("logging.advancedSettings.showLogSystemName", defaultShowLogSystemNames)
	v.SetDefault("logging.advancedSettings.spacer", defaultLoggingSpacer)
	v.SetDefault("logging.advancedSettings.timeStampFormat", defaultLoggingTimeFormat)
	v.SetDefault("logging.advancedSettings.headers.info", "[INFO]")
	v.SetDefault("logging.advancedSettings.headers.warn", "[WARN]")
	v.SetDefault("logging.advancedSettings.headers.debug", "[DEBUG]")
	v.SetDefault("logging.advancedSettings.headers.error", "[ERROR]")

	v.SetDefault("strategy.coin", "")
	v.SetDefault("strategy.direction", defaultStrategyDirection)
	v.SetDefault("strategy.tolerance", defaultStrategyTolerance)
	v.SetDefault("strategy.maxAttempts", defaultStrategyAttempts)
	v.SetDefault("strategy.wait", defaultStrategyWait)
	v.SetDefault("strategy.maxWait", 0)
	return v
}

// Validate checks the loaded values for consistency
func (c *Config) Validate() error {
	if c == nil {
		return errConfigNil
	}
	var errs error
	creds := c.GetCredentials()
	if err := creds.Validate(); err != nil {
		errs = errors.Join(errs, err)
	}
	if c.Exchange.HTTPTimeout <= 0 {
		errs = errors.Join(errs, fmt.Errorf("%w: %s", errInvalidHTTPTimeout, c.Exchange.HTTPTimeout))
	}
	if c.Exchange.RateLimit < 0 {
		errs = errors.Join(errs, fmt.Errorf("%w: %d", errInvalidRateLimit, c.Exchange.RateLimit))
	}
	if u, err := url.Parse(c.Exchange.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = errors.Join(errs, fmt.Errorf("%w: %q", errInvalidAPIURL, c.Exchange.APIURL))
	}
	if c.Strategy.MaxAttempts < 1 {
		errs = errors.Join(errs, fmt.Errorf("%w: %d", errInvalidAttempts, c.Strategy.MaxAttempts))
	}
	if c.Strategy.Wait < 0 || c.Strategy.MaxWait < 0 {
		errs = errors.Join(errs, errInvalidWait)
	}
	switch strings.ToLower(c.Strategy.Direction) {
	case "positive", "negative":
	default:
		errs = errors.Join(errs, fmt.Errorf("%w: %q", errInvalidDirection, c.Strategy.Direction))
	}
	return errs
}

// GetCredentials returns the configured API credentials
func (c *Config) GetCredentials() account.Credentials {
	return account.Credentials{
		Key:        c.Credentials.Key,
		Secret:     c.Credentials.Secret,
		SubAccount: c.Credentials.Subaccount,
		OTPSecret:  c.Credentials.OTPSecret,
	}
}
