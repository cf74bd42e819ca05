package app

import "github.com/iov-one/paychan/errors"

// app takes 1100-1109
var (
	ErrNoSuchPath = errors.Register(1100, "path not registered")
)
