package domain

import "errors"

var (
	ErrNetworkFailure = errors.New("network failure")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("file or folder not found")
	ErrStaleListing   = errors.New("listing superseded by a newer request")
	ErrNotInListing   = errors.New("no such entry in current listing")
	ErrNotADirectory  = errors.New("entry is not a directory")
	ErrIsADirectory   = errors.New("entry is a directory")
	ErrPathTraversal  = errors.New("path traversal is not allowed")
	ErrInvalidName    = errors.New("invalid file or folder name")
)
