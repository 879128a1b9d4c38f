package ocr

import (
	"image"
	"math"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/scan-diagrams/internal/errors"
	"github.com/ironsheep/scan-diagrams/internal/imaging"
)

// DefaultLanguage is used when neither the engine nor the caller names one.
const DefaultLanguage = "eng"

// Bounds is a rectangle in scan pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Word is a single recognised word.
type Word struct {
	Text string `json:"text"`

	// Confidence is Tesseract's score scaled to 0..1.
	Confidence float64 `json:"confidence"`

	Bounds Bounds `json:"bounds"`
}

// Result is what Tesseract read inside one region.
type Result struct {
	// Text is the recognised text with surrounding whitespace removed.
	Text string `json:"text"`

	// Region is the part of the scan that was actually read, after
	// clipping to the image bounds.
	Region Bounds `json:"region"`

	// Words may be empty even when Text is not; some Tesseract builds do
	// not report word boxes.
	Words []Word `json:"words"`
}

// Engine runs Tesseract over regions of a scan.
type Engine struct {
	// Language is the Tesseract language code. Empty selects DefaultLanguage.
	Language string

	// Upscale enlarges the crop before recognition. Small printed page
	// numbers read far better at 2 or 3. 0 and 1 leave the crop as is.
	Upscale float64

	// SingleLine switches Tesseract to single text line segmentation,
	// which suits headers and page numbers.
	SingleLine bool
}

// NewEngine returns an engine for language with no upscaling.
func NewEngine(language string) *Engine {
	return &Engine{Language: language}
}

// ReadRegion recognises the text inside rect of img. language overrides
// the engine's language when non-empty.
func (e *Engine) ReadRegion(img image.Image, rect image.Rectangle, language string) (*Result, error) {
	if img == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no image to read")
	}
	clipped := rect.Canon().Intersect(img.Bounds())

	scale := e.Upscale
	if scale <= 0 {
		scale = 1
	}
	crop, err := imaging.CropRegion(img, rect, scale)
	if err != nil {
		return nil, err
	}
	data, err := imaging.Encode(crop, imaging.FormatPNG, 0)
	if err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language(language)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to set OCR language %q", e.language(language))
	}
	if e.SingleLine {
		if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to set page segmentation mode")
		}
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to pass region to tesseract")
	}

	text, err := client.Text()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "OCR failed")
	}

	result := &Result{
		Text:   strings.TrimSpace(text),
		Region: boundsOf(clipped),
		Words:  []Word{},
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// text is still useful without word boxes
		return result, nil
	}
	for _, box := range boxes {
		if strings.TrimSpace(box.Word) == "" {
			continue
		}
		result.Words = append(result.Words, Word{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds:     toScan(box.Box, clipped.Min, scale),
		})
	}
	return result, nil
}

func (e *Engine) language(override string) string {
	if override != "" {
		return override
	}
	if e.Language != "" {
		return e.Language
	}
	return DefaultLanguage
}

// toScan maps a box in crop pixels back to the scan.
func toScan(r image.Rectangle, origin image.Point, scale float64) Bounds {
	unscale := func(v int) int { return int(math.Round(float64(v) / scale)) }
	return Bounds{
		X1: origin.X + unscale(r.Min.X),
		Y1: origin.Y + unscale(r.Min.Y),
		X2: origin.X + unscale(r.Max.X),
		Y2: origin.Y + unscale(r.Max.Y),
	}
}

func boundsOf(r image.Rectangle) Bounds {
	return Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}
