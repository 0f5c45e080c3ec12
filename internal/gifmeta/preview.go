package gifmeta

import (
	"image"
	"image/draw"
	"image/gif"
	"io"

	"github.com/disintegration/imaging"
)

// PreviewWidth is the width the admin panel shows GIF previews at.
const PreviewWidth = 400

// Preview returns the first frame of the GIF at path drawn onto the full
// logical canvas and scaled down to at most width pixels wide.
func Preview(path string, width int) (image.Image, error) {
	img, err := readPath(path)
	if err != nil {
		return nil, err
	}
	frame := firstFrame(img.decode)
	if width > 0 && frame.Bounds().Dx() > width {
		return imaging.Resize(frame, width, 0, imaging.Lanczos), nil
	}
	return frame, nil
}

// WritePreview encodes Preview as PNG.
func WritePreview(w io.Writer, path string, width int) error {
	frame, err := Preview(path, width)
	if err != nil {
		return err
	}
	return imaging.Encode(w, frame, imaging.PNG)
}

func firstFrame(g *gif.GIF) image.Image {
	frame := g.Image[0]
	canvas := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	bound := frame.Bounds()
	if canvas.Empty() || bound == canvas {
		return frame
	}
	// Frames smaller than the canvas are placed on a transparent background
	// so the preview keeps the animation's proportions.
	return addTransparentBackground(canvas, frame)
}

func addTransparentBackground(rect image.Rectangle, paletted *image.Paletted) *image.NRGBA {
	background := image.NewNRGBA(rect)
	draw.Draw(background, background.Bounds(), image.Transparent, image.Point{}, draw.Src)
	draw.Draw(background, paletted.Bounds(), paletted, paletted.Bounds().Min, draw.Over)
	return background
}
