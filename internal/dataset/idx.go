package dataset

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"

	xe "github.com/mdaops/axon/pkg/errors"
)

// IDX magic numbers. 0x08 = unsigned byte items,
// followed by the number of dimensions.
const (
	magicLabels uint32 = 0x00000801
	magicImages uint32 = 0x00000803
)

// maybeGunzip wraps r in a gzip reader when the stream starts with
// the gzip magic bytes. Distribution files come gzipped, but a
// decompressed copy should load too.
func maybeGunzip(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(2)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	if head[0] == 0x1f && head[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, xe.Wrap(err)
		}
		return gz, nil
	}
	return br, nil
}

// readImages parses an IDX3 image file into per-image pixel rows.
//
// # Args
//
// - r io.Reader: decompressed IDX3 stream.
//
// # Returns
//
// - [][]byte: pixel data, one slice per image, row-major grayscale.
//
// - int, int: rows and columns of each image.
//
// - error
func readImages(r io.Reader) ([][]byte, int, int, error) {
	var header struct {
		Magic uint32
		Count uint32
		Rows  uint32
		Cols  uint32
	}
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, 0, 0, xe.Wrap(err)
	}
	if header.Magic != magicImages {
		return nil, 0, 0, xe.Wrap(fmt.Errorf(
			"not an IDX image file (magic = 0x%08x)", header.Magic,
		))
	}

	images := make([][]byte, header.Count)
	size := int(header.Rows) * int(header.Cols)
	for i := range images {
		buf := make([]byte, size)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, 0, 0, xe.WrapWithNote(
				fmt.Sprintf("image %d of %d is truncated", i, header.Count), err,
			)
		}
		images[i] = buf
	}
	return images, int(header.Rows), int(header.Cols), nil
}

// readLabels parses an IDX1 label file.
func readLabels(r io.Reader) ([]uint8, error) {
	var header struct {
		Magic uint32
		Count uint32
	}
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, xe.Wrap(err)
	}
	if header.Magic != magicLabels {
		return nil, xe.Wrap(fmt.Errorf(
			"not an IDX label file (magic = 0x%08x)", header.Magic,
		))
	}

	labels := make([]uint8, header.Count)
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, xe.WrapWithNote("label file is truncated", err)
	}
	return labels, nil
}
