/*
Package errors implements the error kinds shared by every extension.

Reuse the errors declared in this package wherever possible and register a
custom root error only when it is specific to a single extension:

	var ErrFoo = errors.Register(1001, "foo")

Code stands for the ABCI error code, which allows clients to distinguish
errors and act accordingly. Codes must be unique, Register panics otherwise.

Create errors at the point of failure with Wrap or Wrapf so a stack trace is
attached once, at the most inner frame:

	return errors.Wrapf(errors.ErrAmountNotEqual, "want %d, got %d", want, got)

Test for an error kind with Is, which unwraps the cause chain:

	if errors.ErrInvalidSeeds.Is(err) { ... }
*/
package errors
