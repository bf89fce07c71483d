package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const gcsScheme = "gs://"

// Export holds the destination of a register export
type Export struct {
	output string
}

func (x *Export) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Export destination: file path, '-' for stdout, or gs://bucket/object",
			Category:    "Export",
			Value:       "-",
			Sources:     cli.EnvVars("AIREGISTER_EXPORT_OUTPUT"),
			Destination: &x.output,
		},
	}
}

func (x Export) LogValue() slog.Value {
	return slog.GroupValue(slog.String("output", x.output))
}

// Output returns the configured destination
func (x *Export) Output() string {
	return x.output
}

// Open returns a writer for the destination. Data written to a Cloud Storage
// object is committed only when Close returns nil.
func (x *Export) Open(ctx context.Context) (io.WriteCloser, error) {
	switch {
	case x.output == "" || x.output == "-":
		return nopCloser{Writer: os.Stdout}, nil

	case strings.HasPrefix(x.output, gcsScheme):
		bucket, object, err := parseGCSPath(x.output)
		if err != nil {
			return nil, err
		}
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create storage client")
		}
		w := client.Bucket(bucket).Object(object).NewWriter(ctx)
		w.ContentType = "text/csv"
		return &gcsWriter{Writer: w, client: client}, nil

	default:
		// #nosec G304 - path is provided by CLI argument
		f, err := os.Create(x.output)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create export file", goerr.V("path", x.output))
		}
		return f, nil
	}
}

func parseGCSPath(path string) (bucket, object string, err error) {
	rest := strings.TrimPrefix(path, gcsScheme)
	bucket, object, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" || strings.HasSuffix(object, "/") {
		return "", "", goerr.New("invalid Cloud Storage path, expected gs://bucket/object", goerr.V("path", path))
	}
	return bucket, object, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

type gcsWriter struct {
	*storage.Writer
	client *storage.Client
}

func (x *gcsWriter) Close() error {
	if err := x.Writer.Close(); err != nil {
		_ = x.client.Close()
		return goerr.Wrap(err, "failed to upload export",
			goerr.V("bucket", x.Writer.Bucket),
			goerr.V("object", x.Writer.Name))
	}
	if err := x.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close storage client")
	}
	return nil
}
