package config

import (
	"errors"
	"time"

	"github.com/basis-arb/ftxclient/log"
)

// Constants declared here are filename strings and defaults
const (
	File                      = "config.json"
	EnvPrefix                 = "FTX"
	DefaultAPIURL             = "https://ftx.com/api"
	defaultName               = "ftxclient"
	defaultHTTPTimeout        = time.Second * 15
	defaultStrategyAttempts   = 10
	defaultStrategyWait       = time.Second * 5
	defaultStrategyDirection  = "positive"
	defaultStrategyTolerance  = 1.0
	defaultLoggingLevel       = "INFO|WARN|ERROR"
	defaultLoggingOutput      = "console"
	defaultLoggingSpacer      = " | "
	defaultLoggingTimeFormat  = "02/01/2006 15:04:05"
	defaultShowLogSystemNames = true
)

var (
	errInvalidHTTPTimeout   = errors.New("http timeout must be greater than zero")
	errInvalidRateLimit     = errors.New("rate limit cannot be negative")
	errInvalidAPIURL        = errors.New("invalid api url")
	errInvalidAttempts      = errors.New("strategy max attempts must be at least one")
	errInvalidWait          = errors.New("strategy wait cannot be negative")
	errInvalidDirection     = errors.New("strategy direction must be positive or negative")
	errConfigNil            = errors.New("config is nil")
	errFailureOpeningConfig = errors.New("failure opening config")
)

// Config is the overarching object that holds the client, logging and
// strategy settings
type Config struct {
	Name        string               `json:"name" mapstructure:"name"`
	Credentials APICredentialsConfig `json:"credentials" mapstructure:"credentials"`
	Exchange    ExchangeConfig       `json:"exchange" mapstructure:"exchange"`
	Logging     log.Config           `json:"logging" mapstructure:"logging"`
	Strategy    StrategyConfig       `json:"strategy" mapstructure:"strategy"`
}

// APICredentialsConfig stores the API credentials
type APICredentialsConfig struct {
	Key        string `json:"key,omitempty" mapstructure:"key"`
	Secret     string `json:"secret,omitempty" mapstructure:"secret"`
	Subaccount string `json:"subaccount,omitempty" mapstructure:"subaccount"`
	OTPSecret  string `json:"otpSecret,omitempty" mapstructure:"otpSecret"`
}

// ExchangeConfig holds the REST client settings
type ExchangeConfig struct {
	APIURL      string        `json:"apiURL" mapstructure:"apiURL"`
	HTTPTimeout time.Duration `json:"httpTimeout" mapstructure:"httpTimeout"`
	// RateLimit is the number of requests allowed per second, 0 disables
	// client side throttling
	RateLimit     int  `json:"rateLimit" mapstructure:"rateLimit"`
	Verbose       bool `json:"verbose" mapstructure:"verbose"`
	HTTPDebugging bool `json:"httpDebugging" mapstructure:"httpDebugging"`
}

// StrategyConfig holds the defaults for the basis arbitrage loop
type StrategyConfig struct {
	Coin        string        `json:"coin" mapstructure:"coin"`
	Direction   string        `json:"direction" mapstructure:"direction"`
	Tolerance   float64       `json:"tolerance" mapstructure:"tolerance"`
	MaxAttempts int           `json:"maxAttempts" mapstructure:"maxAttempts"`
	Wait        time.Duration `json:"wait" mapstructure:"wait"`
	// MaxWait caps the exponential wait, when zero a constant wait is used
	MaxWait time.Duration `json:"maxWait" mapstructure:"maxWait"`
}
