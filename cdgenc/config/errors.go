/*
NAME
  errors.go

LICENSE
  This software is provided under the MIT license.
*/

package config

import "errors"

var errNoLogger = errors.New("config: Logger must be set")
