package services

import "errors"

var (
	// ErrExtractionFailed marks a résumé whose text could not be recovered. It is a client error.
	ErrExtractionFailed = errors.New("could not extract text from resume")
	// ErrUnsupportedFormat is returned by the text extractor for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported resume format")
	// ErrUnknownProvider is returned when a configured backend name is not recognised.
	ErrUnknownProvider = errors.New("unknown provider")
)
