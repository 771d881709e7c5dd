package sentinel

// Compile-time check that Error implements the error interface.
var _ error = Error("")

// Error is an immutable error type backed by a string constant.
// Comparison is by value, so errors.Is matches a wrapped const through
// fmt.Errorf("%w") chains without any Is method.
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}
