package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kat-co/vala"
)

// contextCredential is a string flag for use with context values when
// overriding credentials for a single request.
type contextCredential string

const (
	// ContextSubAccountFlag used for retrieving just the sub account from
	// context, when the default config credentials sub account needs to be
	// changed while the same keys can be used.
	ContextSubAccountFlag contextCredential = "subaccountoverride"

	apiKeyDisplaySize = 16
)

var (
	// ErrCredentialsIncomplete is returned when only one half of a key and
	// secret pair is supplied
	ErrCredentialsIncomplete = errors.New("api key and secret must both be set")
	// ErrCredentialsAreEmpty is returned when an authenticated operation is
	// attempted without credentials
	ErrCredentialsAreEmpty = errors.New("credentials are empty")
)

// Credentials define parameters that allow for an authenticated request.
type Credentials struct {
	Key        string
	Secret     string
	SubAccount string
	// OTPSecret is the base32 TOTP seed used to generate withdrawal codes
	OTPSecret string
}

// String prints out basic credential info (obfuscated) to track key instances
// associated with exchanges. The secret is never printed.
func (c *Credentials) String() string {
	obfuscated := c.Key
	if len(obfuscated) > apiKeyDisplaySize {
		obfuscated = obfuscated[:apiKeyDisplaySize]
	}
	return fmt.Sprintf("Key:[%s...] SubAccount:[%s]", obfuscated, c.SubAccount)
}

// IsEmpty return true if the underlying credentials type has not been filled
// with at least one item.
func (c *Credentials) IsEmpty() bool {
	return c == nil || c.Key == "" &&
		c.Secret == "" &&
		c.SubAccount == "" &&
		c.OTPSecret == ""
}

// CanSign returns true when both halves of the key pair are present
func (c *Credentials) CanSign() bool {
	return c != nil && c.Key != "" && c.Secret != ""
}

// Validate checks that the key and secret are supplied together
func (c *Credentials) Validate() error {
	if c == nil {
		return ErrCredentialsAreEmpty
	}
	err := vala.BeginValidation().Validate(
		pairedWith(c.Key, c.Secret, "secret is set without an api key"),
		pairedWith(c.Secret, c.Key, "api key is set without a secret"),
	).Check()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCredentialsIncomplete, err)
	}
	return nil
}

// pairedWith fails when other is set and want is not
func pairedWith(want, other, msg string) vala.Checker {
	return func() (bool, string) {
		return want != "" || other == "", msg
	}
}

// DeploySubAccountToContext overrides the credentials sub account for
// requests made with the returned context
func DeploySubAccountToContext(ctx context.Context, subAccount string) context.Context {
	return context.WithValue(ctx, ContextSubAccountFlag, strings.TrimSpace(subAccount))
}

// SubAccountFromContext returns a sub account override if one was deployed
func SubAccountFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(ContextSubAccountFlag).(string)
	return sub, ok
}
