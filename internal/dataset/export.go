package dataset

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdaops/axon/pkg/cluster/objectstore"
	xe "github.com/mdaops/axon/pkg/errors"
	"github.com/mdaops/axon/pkg/registry"
)

// sampleFileName flattens a class name into something every
// filesystem accepts: "Ankle boot" -> "07_ankle-boot.png".
func sampleFileName(i int, class string) string {
	class = strings.ToLower(class)
	class = strings.ReplaceAll(class, "/", "-")
	class = strings.ReplaceAll(class, " ", "-")
	return fmt.Sprintf("%02d_%s.png", i, class)
}

// ExportSamples writes the first n items of d into destDir as PNG
// files, creating destDir if needed.
//
// # Returns
//
// - []string: paths of the written files, in item order.
//
// - error
func ExportSamples(d *Dataset, n int, destDir string) ([]string, error) {
	if d.Len() < n {
		n = d.Len()
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, xe.Wrap(err)
	}

	written := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dest := filepath.Join(destDir, sampleFileName(i, d.ClassName(i)))
		if err := writePNG(dest, d, i); err != nil {
			return nil, err
		}
		written = append(written, dest)
	}
	return written, nil
}

func writePNG(dest string, d *Dataset, i int) error {
	f, err := os.Create(dest)
	if err != nil {
		return xe.Wrap(err)
	}
	defer f.Close()

	if err := png.Encode(f, d.Image(i)); err != nil {
		return xe.WrapWithNote(fmt.Sprintf("encoding item %d", i), err)
	}
	return nil
}

// Archive writes a tar.gz of the regular files under root into dest.
// Entry names are relative to root, in walk order.
func Archive(ctx context.Context, root string, dest io.Writer) error {
	gzw := gzip.NewWriter(dest)
	tw := tar.NewWriter(gzw)

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}
		relpath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = relpath
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return xe.Wrap(err)
	}

	if err := tw.Close(); err != nil {
		return xe.Wrap(err)
	}
	if err := gzw.Close(); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

// Push archives samplesDir, uploads it to the object store and
// records it in the registry.
//
// The object key is "<name>/<version>.tar.gz" under bucket. The
// recorded digest is the sha256 of the uploaded archive.
func Push(
	ctx context.Context,
	store objectstore.Store,
	reg registry.Registry,
	bucket string, name string, version string,
	samplesDir string,
) (registry.Artifact, error) {

	buf := new(bytes.Buffer)
	digest := sha256.New()
	if err := Archive(ctx, samplesDir, io.MultiWriter(buf, digest)); err != nil {
		return registry.Artifact{}, err
	}

	if err := store.EnsureBucket(ctx, bucket); err != nil {
		return registry.Artifact{}, err
	}

	key := fmt.Sprintf("%s/%s.tar.gz", name, version)
	obj, err := store.Put(
		ctx, bucket, key, buf, int64(buf.Len()), "application/gzip",
	)
	if err != nil {
		return registry.Artifact{}, err
	}

	artifact := registry.Artifact{
		Name:    name,
		Version: version,
		Kind:    "dataset",
		URI:     obj.URI(),
		Digest:  hex.EncodeToString(digest.Sum(nil)),
		Size:    obj.Size,
	}
	if err := reg.Record(ctx, artifact); err != nil {
		return registry.Artifact{}, err
	}
	return artifact, nil
}
