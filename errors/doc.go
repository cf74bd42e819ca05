/*
Package errors implements custom error interfaces for paychan.

The idea is to reuse as many errors from this package as possible and define
custom package errors when absolutely necessary. Extensions register their own
root errors with Register(code, description), each within its own code range
(see x/channel/errors.go).

For reusing errors use ErrXxx.New and ErrXxx.Newf, or Wrap/Wrapf. Code stands
for the receipt error code, which allows to distinguish types of errors on the
client side and act accordingly.

Create errors using ErrXyz.New("...") or errors.Wrap(err, "...") at the point
of failure to attach a stacktrace. Do not declare a global
`var ErrFoo = errors.ErrInput.New("foo")` or you will get a useless stacktrace.

Once you have an error, use fmt to get more context
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
