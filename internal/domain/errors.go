package domain

import "errors"

var (
	ErrUnparseableVisionResponse = errors.New("unparseable vision response")
	ErrInvalidGrade              = errors.New("invalid grade")
	ErrVisionUnavailable         = errors.New("vision service unavailable")
	ErrVisionTimeout             = errors.New("vision service timed out")
	ErrVisionRateLimited         = errors.New("vision service rate limited")
	ErrUnsupportedFileType       = errors.New("unsupported file type")
	ErrFileTooLarge              = errors.New("file exceeds maximum allowed size")
	ErrEmptyFile                 = errors.New("uploaded file is empty")
	ErrMissingFile               = errors.New("file is required")
)
