package ftx

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/basis-arb/ftxclient/exchanges/request"
	"github.com/buger/jsonparser"
)

// ErrInvalidArgument is wrapped by every precondition failure detected before
// a request is sent
var ErrInvalidArgument = errors.New("invalid argument")

var (
	// ErrAuthenticationRequired is returned when an authenticated endpoint is
	// called without credentials
	ErrAuthenticationRequired = fmt.Errorf("%w: authenticated endpoint requires api credentials", ErrInvalidArgument)
	// ErrPageLimitReached is returned when paginating stops at the caller's
	// page bound before the exchange ran out of data
	ErrPageLimitReached = errors.New("page limit reached")
	// ErrNoFundingData is returned when a funding calculation has nothing to
	// aggregate
	ErrNoFundingData = errors.New("no funding data")
	// ErrPositionNotFound is returned when no position exists for a future
	ErrPositionNotFound = errors.New("position not found")

	errMarketNameEmpty          = fmt.Errorf("%w: market name cannot be empty", ErrInvalidArgument)
	errCoinEmpty                = fmt.Errorf("%w: coin cannot be empty", ErrInvalidArgument)
	errRequestNil               = fmt.Errorf("%w: request cannot be nil", ErrInvalidArgument)
	errInvalidOrderSide         = fmt.Errorf("%w: order side must be buy or sell", ErrInvalidArgument)
	errInvalidOrderType         = fmt.Errorf("%w: order type must be limit or market", ErrInvalidArgument)
	errInvalidSize              = fmt.Errorf("%w: size must be greater than zero", ErrInvalidArgument)
	errInvalidPrice             = fmt.Errorf("%w: limit orders require a price greater than zero", ErrInvalidArgument)
	errOrderIDSelection         = fmt.Errorf("%w: must supply exactly one of order id or client order id", ErrInvalidArgument)
	errModifyPriceAndSize       = fmt.Errorf("%w: cannot modify both price and size of an order", ErrInvalidArgument)
	errInvalidTriggerType       = fmt.Errorf("%w: conditional order type must be stop, take_profit or trailing_stop", ErrInvalidArgument)
	errTriggerPriceRequired     = fmt.Errorf("%w: stop and take profit orders need a trigger price", ErrInvalidArgument)
	errTrailValueRequired       = fmt.Errorf("%w: trailing stops need a trail value", ErrInvalidArgument)
	errTrailingStopTriggerPrice = fmt.Errorf("%w: trailing stops cannot take a trigger price", ErrInvalidArgument)
	errInvalidResolution        = fmt.Errorf("%w: resolution must be greater than zero", ErrInvalidArgument)
	errInvalidDays              = fmt.Errorf("%w: days must be greater than zero", ErrInvalidArgument)
	errInvalidID                = fmt.Errorf("%w: id cannot be empty", ErrInvalidArgument)
	errAddressEmpty             = fmt.Errorf("%w: address cannot be empty", ErrInvalidArgument)
	errNicknameEmpty            = fmt.Errorf("%w: nickname cannot be empty", ErrInvalidArgument)

	errNotJSON          = errors.New("response body is not valid JSON")
	errHTTPStatus       = errors.New("unsuccessful HTTP status")
	errMissingSuccess   = errors.New("response envelope has no boolean success field")
	errUnexpectedResult = errors.New("unexpected result shape")
)

// APIError is a failure reported by the exchange in the response envelope
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ftx api error (HTTP %d): %s", e.StatusCode, e.Message)
}

// MalformedResponseError is returned when a response could not be
// interpreted, either because it is not JSON or because it does not have the
// expected shape
type MalformedResponseError struct {
	StatusCode int
	Status     string
	Body       []byte
	Err        error
}

const maxErrorBodyDisplay = 256

func (e *MalformedResponseError) Error() string {
	body := e.Body
	if len(body) > maxErrorBodyDisplay {
		body = body[:maxErrorBodyDisplay]
	}
	return fmt.Sprintf("malformed response (HTTP %d): %v: %s", e.StatusCode, e.Err, body)
}

// Unwrap returns the underlying cause
func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// processResponse unwraps the {success, result, error} envelope. On success
// the result is returned verbatim, nil when the envelope carries no result.
func processResponse(resp *request.Response) (json.RawMessage, error) {
	malformed := func(err error) error {
		return &MalformedResponseError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       resp.Body,
			Err:        err,
		}
	}
	if !json.Valid(resp.Body) {
		if !resp.IsSuccessStatus() {
			return nil, malformed(fmt.Errorf("%w: %s", errHTTPStatus, resp.Status))
		}
		return nil, malformed(errNotJSON)
	}

	success, err := jsonparser.GetBoolean(resp.Body, "success")
	if err != nil {
		return nil, malformed(fmt.Errorf("%w: %v", errMissingSuccess, err))
	}
	if !success {
		msg, err := jsonparser.GetString(resp.Body, "error")
		if err != nil && !errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return nil, malformed(fmt.Errorf("%w: error field: %v", errUnexpectedResult, err))
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	value, dataType, _, err := jsonparser.Get(resp.Body, "result")
	switch {
	case errors.Is(err, jsonparser.KeyPathNotFoundError), dataType == jsonparser.NotExist, dataType == jsonparser.Null:
		return nil, nil
	case err != nil:
		return nil, malformed(fmt.Errorf("%w: %v", errUnexpectedResult, err))
	case dataType == jsonparser.String:
		// value is the escaped literal without its quotes
		quoted := make([]byte, 0, len(value)+2)
		quoted = append(quoted, '"')
		quoted = append(quoted, value...)
		return append(quoted, '"'), nil
	}
	return json.RawMessage(value), nil
}
