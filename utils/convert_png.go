package main

// Converts an equirectangular black/white PNG of Earth into a GeoJSON land file
// usable with ascii-earth -land. Dark pixels are land, light pixels are water.
// Original Projection borrowed from https://github.com/arscan/encom-globe

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"ascii-earth/shapes"
)

func main() {
	in := flag.String("in", "equirectangle_projection.png", "Equirectangular PNG to read")
	out := flag.String("out", "land.geojson", "GeoJSON file to write")
	width := flag.Int("w", 120, "Lattice width in cells")
	height := flag.Int("h", 60, "Lattice height in cells")
	threshold := flag.Int("t", 128, "Gray level below which a cell is land (0-255)")
	flag.Parse()

	if *width < 2 || *height < 1 {
		fmt.Fprintf(os.Stderr, "Error: lattice must be at least 2x1 cells\n")
		os.Exit(1)
	}
	if *threshold < 0 || *threshold > 255 {
		fmt.Fprintf(os.Stderr, "Error: threshold must be between 0 and 255\n")
		os.Exit(1)
	}

	if err := convert(*in, *out, *width, *height, uint8(*threshold)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func convert(in, out string, width, height int, threshold uint8) error {
	file, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open %s: %w", in, err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return fmt.Errorf("decode %s: %w", in, err)
	}

	mask := resample(img, width, height)
	polys := shapes.FromMask(width, height, func(x, y int) bool {
		return mask.GrayAt(x, y).Y < threshold
	})

	data, err := shapes.EncodeGeoJSON(polys)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("%s: %dx%d cells, %d polygons\n", out, width, height, len(polys))
	return nil
}

// resample scales img onto a width×height gray lattice.
func resample(img image.Image, width, height int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
