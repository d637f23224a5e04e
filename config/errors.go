// SPDX-License-Identifier: MIT

package config

import "errors"

// ErrInvalidConfig is returned (wrapped with the offending field) when a
// loaded or overridden value is out of range.
var ErrInvalidConfig = errors.New("config: invalid configuration")
