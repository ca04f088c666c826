package domain

import "errors"

// ErrAlreadyExists is an error thrown when entity already exists
var ErrAlreadyExists = errors.New("already exists")

// ErrOrderNotFound is an error thrown when an order is not found
var ErrOrderNotFound = errors.New("order not found")

// ErrOrderFileNotFound is an error thrown when an order file is not found
var ErrOrderFileNotFound = errors.New("order file not found")

// ErrNoTemporaryFiles is an error thrown when an order has no temporary refs to migrate
var ErrNoTemporaryFiles = errors.New("no temporary files to migrate")

// ErrMigrationInProgress is an error thrown when another caller holds the
// in-progress transition; callers should retry later
var ErrMigrationInProgress = errors.New("migration already in progress")

// ErrMigrationPrecondition is an error thrown when migrate is called in a
// state other than not_started or failed
var ErrMigrationPrecondition = errors.New("migration precondition not met")

// ErrMigrationNotCompleted is an error thrown when a download is requested
// before the order's files reached permanent storage
var ErrMigrationNotCompleted = errors.New("migration not completed")

// ErrBlobNotFound is an error thrown when an object does not exist in storage
var ErrBlobNotFound = errors.New("blob not found")

// ErrSizeMismatch is an error thrown when a copied blob's size disagrees with its source
var ErrSizeMismatch = errors.New("size mismatch")

// ErrChecksumMismatch is an error thrown when a copied blob's checksum disagrees with its source
var ErrChecksumMismatch = errors.New("checksum mismatch")

// ErrInvalidEmail is an error thrown when a customer email does not validate
var ErrInvalidEmail = errors.New("invalid customer email")

// ErrInvalidFileRole is an error thrown when a file role is outside the closed set
var ErrInvalidFileRole = errors.New("invalid file role")

// ErrInvalidFileType is an error thrown when file type is invalid
var ErrInvalidFileType = errors.New("invalid file type")

// ErrFileSizeTooBig is an error thrown when file size is too big
var ErrFileSizeTooBig = errors.New("file size too big")
