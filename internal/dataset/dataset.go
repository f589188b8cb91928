// Package dataset reads FashionMNIST-style IDX archives and renders
// samples for eyeballing before a training run.
package dataset

import (
	"fmt"
	"image"
	"os"

	xe "github.com/mdaops/axon/pkg/errors"
)

// FashionMNISTClasses maps label values to class names,
// in label order.
var FashionMNISTClasses = []string{
	"T-shirt/top",
	"Trouser",
	"Pullover",
	"Dress",
	"Coat",
	"Sandal",
	"Shirt",
	"Sneaker",
	"Bag",
	"Ankle boot",
}

type Dataset struct {
	images  [][]byte
	labels  []uint8
	rows    int
	cols    int
	classes []string
}

// Load reads an IDX image file and its label file.
//
// Both files may be gzip-compressed or raw. Image count and label
// count must agree.
func Load(imagesPath string, labelsPath string, classes []string) (*Dataset, error) {
	imgFile, err := os.Open(imagesPath)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer imgFile.Close()

	imgStream, err := maybeGunzip(imgFile)
	if err != nil {
		return nil, err
	}
	images, rows, cols, err := readImages(imgStream)
	if err != nil {
		return nil, err
	}

	lblFile, err := os.Open(labelsPath)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer lblFile.Close()

	lblStream, err := maybeGunzip(lblFile)
	if err != nil {
		return nil, err
	}
	labels, err := readLabels(lblStream)
	if err != nil {
		return nil, err
	}

	if len(images) != len(labels) {
		return nil, xe.Wrap(fmt.Errorf(
			"%d images but %d labels", len(images), len(labels),
		))
	}

	return &Dataset{
		images: images, labels: labels,
		rows: rows, cols: cols,
		classes: classes,
	}, nil
}

func (d *Dataset) Len() int {
	return len(d.images)
}

// ClassName returns the class name of the i-th item.
// Labels beyond the known classes come back as "label-<N>".
func (d *Dataset) ClassName(i int) string {
	label := int(d.labels[i])
	if label < len(d.classes) {
		return d.classes[label]
	}
	return fmt.Sprintf("label-%d", label)
}

// Image renders the i-th item as a grayscale image.
func (d *Dataset) Image(i int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, d.cols, d.rows))
	copy(img.Pix, d.images[i])
	return img
}

type Stats struct {
	Count int
	Rows  int
	Cols  int

	// PerClass counts items per class name.
	PerClass map[string]int
}

func (d *Dataset) Stats() Stats {
	perClass := map[string]int{}
	for i := range d.labels {
		perClass[d.ClassName(i)] += 1
	}
	return Stats{
		Count:    len(d.images),
		Rows:     d.rows,
		Cols:     d.cols,
		PerClass: perClass,
	}
}
