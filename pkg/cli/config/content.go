package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/repohost/pkg/infra/content/bolt"
	"github.com/m-mizutani/repohost/pkg/infra/content/gcs"
	"github.com/urfave/cli/v3"
)

// Content selects the blob backend: GCS when a bucket is set, otherwise a BoltDB file when a path is set
type Content struct {
	boltPath  string
	gcsBucket string
	gcsPrefix string
}

func (x *Content) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "content-bolt-path",
			Usage:       "Path of BoltDB file to keep file contents",
			Category:    "Content",
			Sources:     cli.EnvVars("REPOHOST_CONTENT_BOLT_PATH"),
			Destination: &x.boltPath,
		},
		&cli.StringFlag{
			Name:        "content-gcs-bucket",
			Usage:       "Cloud Storage bucket to keep file contents",
			Category:    "Content",
			Sources:     cli.EnvVars("REPOHOST_CONTENT_GCS_BUCKET"),
			Destination: &x.gcsBucket,
		},
		&cli.StringFlag{
			Name:        "content-gcs-prefix",
			Usage:       "Object name prefix in the Cloud Storage bucket",
			Category:    "Content",
			Sources:     cli.EnvVars("REPOHOST_CONTENT_GCS_PREFIX"),
			Value:       "blobs/",
			Destination: &x.gcsPrefix,
		},
	}
}

func (x *Content) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("boltPath", x.boltPath),
		slog.String("gcsBucket", x.gcsBucket),
		slog.String("gcsPrefix", x.gcsPrefix),
	)
}

func (x *Content) UseGCS() bool {
	return x.gcsBucket != ""
}

func (x *Content) UseBolt() bool {
	return x.boltPath != ""
}

func (x *Content) NewGCS(ctx context.Context) (*gcs.Store, error) {
	return gcs.New(ctx, x.gcsBucket, []gcs.Option{gcs.WithPrefix(x.gcsPrefix)})
}

func (x *Content) NewBolt() (*bolt.Store, error) {
	return bolt.New(x.boltPath)
}
