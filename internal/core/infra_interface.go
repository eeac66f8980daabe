package core

import (
	"context"
	"io"

	"github.com/markdave123-py/delulu-meter/internal/models"
)

// JobStore keeps analysis jobs for the life of the process.
type JobStore interface {
	// Put inserts a new job. It fails if the id is already taken.
	Put(ctx context.Context, job *models.Job) error
	// Get returns the current snapshot, or nil with no error when the id is unknown.
	Get(ctx context.Context, id string) (*models.Job, error)
	// CompareAndSwap replaces the job only if its current status equals from.
	CompareAndSwap(ctx context.Context, id string, from models.JobStatus, next *models.Job) (bool, error)
}

// ObjectClient defines interactions with S3 or any object storage.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data io.Reader, contentType string) (url string, err error)
}
