package chashmap

import "errors"

// ErrKeyNotFound is returned by At when the requested key is absent.
var ErrKeyNotFound = errors.New("chashmap: key not found")
