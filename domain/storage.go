package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessListFiles  = "files retrieved successfully"
	MessageSuccessUploadFile = "file uploaded successfully"
	MessageSuccessDeleteFile = "file deleted successfully"
	MessageFailedListFiles   = "failed to retrieve files"
	MessageFailedUploadFile  = "failed to upload file"
	MessageFailedDeleteFile  = "failed to delete file"

	ErrAdminOnly       = errors.New("admin role required")
	ErrFileNotProvided = errors.New("file not provided")
)

type (
	StoredFile struct {
		Key          string    `json:"key"`
		URL          string    `json:"url"`
		Size         int64     `json:"size"`
		LastModified time.Time `json:"last_modified"`
	}

	UploadFileResponse struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
)
