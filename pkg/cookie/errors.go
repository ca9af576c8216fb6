package cookie

import "errors"

var (
	ErrInvalidCookie = errors.New("cookie.invalid")
	ErrNilJar        = errors.New("cookie.nil_jar")
)
