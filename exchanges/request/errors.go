package request

import "fmt"

// TransportError is returned when the HTTP exchange itself fails, for example
// on DNS, connection or TLS errors, a context deadline or a truncated body. No
// response from the remote service was observed.
type TransportError struct {
	Name   string
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s %s transport failure: %v", e.Name, e.Method, e.Path, e.Err)
}

// Unwrap returns the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Err
}
