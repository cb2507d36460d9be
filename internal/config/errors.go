package config

import (
	"errors"
)

// ErrInvalidConfig wraps every validation failure returned by ReadConfig.
var ErrInvalidConfig = errors.New("invalid config")
