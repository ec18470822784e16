package config

import "errors"

// Sentinel config errors, grounded on the teacher's root errors.go
// (errConfigFileNotFound, errConfigFileRead, errConfigInvalid,
// errTicketDirEmpty), exported here since config is its own package
// rather than part of package main.
var (
	ErrConfigFileNotFound    = errors.New("config file not found")
	ErrConfigFileRead        = errors.New("cannot read config file")
	ErrConfigInvalid         = errors.New("invalid config file")
	ErrDictionaryPathEmpty   = errors.New("dictionary_path cannot be empty")
	ErrFlashChunkSizeInvalid = errors.New("flash_chunk_size must be positive")
)
