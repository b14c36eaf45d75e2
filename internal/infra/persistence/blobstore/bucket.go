package blobstore

import (
	"context"
	"log/slog"

	"nudge/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// bucket URL schemes: file://, gs://, mem://
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// OpenBucket opens the configured bucket and closes it on shutdown.
func OpenBucket(params Params) (*blob.Bucket, error) {
	url := params.Config.Storage.BlobURL
	if url == "" {
		return nil, errors.New("storage.blobUrl is required for the blob driver")
	}

	bucket, err := blob.OpenBucket(params.Ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", url)
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	params.Logger.Info("Blob device store opened",
		slog.String("bucket", url),
		slog.String("key", params.Config.Storage.BlobKey),
	)

	return bucket, nil
}
