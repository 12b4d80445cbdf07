package models

import "github.com/go-playground/validator/v10"

// validate is the shared validator instance used by all model Validate methods.
// RequiredStructEnabled makes nested structs (e.g. Entry.Cycling) participate
// in required checks instead of being skipped when zero-valued.
var validate = validator.New(validator.WithRequiredStructEnabled())
