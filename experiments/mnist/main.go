package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"math/rand"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/everybit/everybit"
	"github.com/unixpickle/mnistlite"
)

const ImageSize = 28

func main() {
	var shift int
	var numSamples int
	var threshold float64
	var samplePath string
	var seed int64

	flag.IntVar(&shift, "shift", 7, "columns to shift each digit to the right")
	flag.IntVar(&numSamples, "samples", 8, "digits per row of the output grid")
	flag.Float64Var(&threshold, "threshold", 0.5, "intensity at which a pixel becomes 1")
	flag.StringVar(&samplePath, "sample-path", "samples.png", "path of samples output image")
	flag.Int64Var(&seed, "seed", 0, "random seed for picking digits")
	flag.Parse()

	if numSamples <= 0 {
		essentials.Die("number of samples must be positive")
	}

	log.Println("Loading MNIST ...")
	data := mnistlite.LoadTrainingDataSet()
	rng := rand.New(rand.NewSource(seed))

	var originals, shifted []*everybit.BitArray
	for _, i := range rng.Perm(len(data.Samples))[:numSamples] {
		digit := Binarize(data.Samples[i].Intensities, threshold)
		moved := digit.Clone()
		ShiftRows(moved, shift)

		restored := moved.Clone()
		ShiftRows(restored, -shift)
		if !restored.Equal(digit) {
			essentials.Die("shifting back did not restore sample", i)
		}

		originals = append(originals, digit)
		shifted = append(shifted, moved)
	}
	log.Printf("shifted %d digits by %d columns", numSamples, shift)

	WriteGrid(samplePath, [][]*everybit.BitArray{originals, shifted})
}

// Binarize converts pixel intensities into a bit array with
// one bit per pixel in row-major order.
func Binarize(intensities []float64, threshold float64) *everybit.BitArray {
	res := everybit.NewBitArray(len(intensities))
	for i, x := range intensities {
		if x >= threshold {
			res.Set(i, true)
		}
	}
	return res
}

// ShiftRows cyclically shifts every row of the image to the
// right, wrapping pixels around to the left edge.
func ShiftRows(img *everybit.BitArray, columns int) {
	for y := 0; y < ImageSize; y++ {
		img.Rotate(y*ImageSize, ImageSize, columns)
	}
}

func WriteGrid(path string, rows [][]*everybit.BitArray) {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	img := image.NewGray(image.Rect(0, 0, width*ImageSize, len(rows)*ImageSize))
	for rowIdx, row := range rows {
		for i, sample := range row {
			x := ImageSize * i
			y := ImageSize * rowIdx
			for subX := 0; subX < ImageSize; subX++ {
				for subY := 0; subY < ImageSize; subY++ {
					if sample.Get(subX + subY*ImageSize) {
						img.SetGray(x+subX, y+subY, color.Gray{Y: uint8(255)})
					} else {
						img.SetGray(x+subX, y+subY, color.Gray{Y: uint8(0)})
					}
				}
			}
		}
	}
	w, err := os.Create(path)
	essentials.Must(err)
	defer w.Close()
	essentials.Must(png.Encode(w, img))
}
