package diagram

import (
	"image"

	"github.com/ironsheep/scan-diagrams/internal/imaging"
)

// Output says how a rendered diagram leaves the process.
type Output struct {
	Format  imaging.Format
	Quality int

	// Dir receives the file when Save is set. Empty means os.TempDir().
	Dir  string
	Save bool
}

// Rendered is an encoded diagram and, when saved, the file it was written to.
type Rendered struct {
	Path string
	Data []byte
}

// Render encodes img and optionally saves it under a fresh uuid name.
func Render(img image.Image, out Output) (*Rendered, error) {
	if out.Format == "" {
		out.Format = imaging.FormatJPEG
	}
	data, err := imaging.Encode(img, out.Format, out.Quality)
	if err != nil {
		return nil, err
	}

	r := &Rendered{Data: data}
	if out.Save {
		r.Path = imaging.TempPath(out.Dir, out.Format)
		if err := imaging.Save(r.Path, img, out.Quality); err != nil {
			return nil, err
		}
	}
	return r, nil
}
