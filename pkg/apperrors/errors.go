package apperrors

import "errors"

var (
	ErrNoCategoryHeaders = errors.New("no category headers found in source document")
	ErrDuplicateEntryID  = errors.New("duplicate entry id")
	ErrDuplicateEntryIdx = errors.New("duplicate entry index number")
	ErrSchemaValidation  = errors.New("schema validation failed")
)
