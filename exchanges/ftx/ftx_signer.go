package ftx

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/basis-arb/ftxclient/common/convert"
	"github.com/basis-arb/ftxclient/common/crypto"
	"github.com/basis-arb/ftxclient/exchanges/account"
)

// Authentication header names
const (
	HeaderKey        = "FTX-KEY"
	HeaderSign       = "FTX-SIGN"
	HeaderTimestamp  = "FTX-TS"
	HeaderSubAccount = "FTX-SUBACCOUNT"
)

// Signer produces the authentication headers for a request. It holds its own
// copy of the credentials and reads the clock on every call.
type Signer struct {
	key        string
	secret     []byte
	subAccount string
	now        func() time.Time
}

// NewSigner returns a signer for the supplied credentials. A nil clock uses
// time.Now.
func NewSigner(creds account.Credentials, now func() time.Time) (*Signer, error) {
	if creds.Key == "" || creds.Secret == "" {
		return nil, account.ErrCredentialsIncomplete
	}
	if now == nil {
		now = time.Now
	}
	return &Signer{
		key:        creds.Key,
		secret:     []byte(creds.Secret),
		subAccount: creds.SubAccount,
		now:        now,
	}, nil
}

// Sign returns the authentication headers for method, the request target
// (path plus query string, exactly as sent) and the exact body bytes. A sub
// account deployed to ctx overrides the credential sub account.
func (s *Signer) Sign(ctx context.Context, method, pathWithQuery string, body []byte) (map[string]string, error) {
	if s == nil || len(s.secret) == 0 {
		return nil, account.ErrCredentialsIncomplete
	}
	sub := s.subAccount
	if override, ok := account.SubAccountFromContext(ctx); ok {
		sub = override
	}
	return s.signAt(convert.UnixMillis(s.now()), method, pathWithQuery, sub, body)
}

func (s *Signer) signAt(ts int64, method, pathWithQuery, subAccount string, body []byte) (map[string]string, error) {
	sig, err := Signature(s.secret, ts, method, pathWithQuery, body)
	if err != nil {
		return nil, err
	}
	headers := map[string]string{
		HeaderKey:       s.key,
		HeaderSign:      sig,
		HeaderTimestamp: strconv.FormatInt(ts, 10),
	}
	if subAccount != "" {
		headers[HeaderSubAccount] = escapeSubAccount(subAccount)
	}
	return headers, nil
}

// escapeSubAccount percent-encodes everything except unreserved characters
// and '/', spaces become %20
func escapeSubAccount(s string) string {
	return strings.NewReplacer("+", "%20", "%2F", "/").Replace(url.QueryEscape(s))
}

// Signature returns the lower case hex HMAC-SHA256 of
// timestamp + METHOD + pathWithQuery + body keyed by secret
func Signature(secret []byte, ts int64, method, pathWithQuery string, body []byte) (string, error) {
	payload := make([]byte, 0, 20+len(method)+len(pathWithQuery)+len(body))
	payload = strconv.AppendInt(payload, ts, 10)
	payload = append(payload, strings.ToUpper(method)...)
	payload = append(payload, pathWithQuery...)
	payload = append(payload, body...)
	hmac, err := crypto.GetHMAC(crypto.HashSHA256, payload, secret)
	if err != nil {
		return "", err
	}
	return crypto.HexEncodeToString(hmac), nil
}
