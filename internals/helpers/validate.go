// file: internals/helpers/validate.go
package helper

import "github.com/go-playground/validator/v10"

// Shared validator instance; struct tag parsing is cached internally.
var Validate = validator.New()
