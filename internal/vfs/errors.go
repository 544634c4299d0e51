package vfs

import "errors"

var (
	// ErrNotFound means a path segment is missing or a file was walked through
	ErrNotFound = errors.New("no such file or directory")
	// ErrAlreadyExists means an exclusive create hit an existing name
	ErrAlreadyExists = errors.New("file exists")
	// ErrIsDirectory means a file operation targeted a directory
	ErrIsDirectory = errors.New("is a directory")
	// ErrNotDirectory means a directory operation targeted a file
	ErrNotDirectory = errors.New("not a directory")
	// ErrInvalidName means the final path segment cannot name a node
	ErrInvalidName = errors.New("invalid name")
)
