package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/scan-diagrams/internal/errors"
	"github.com/ironsheep/scan-diagrams/internal/evaluate"
	"github.com/ironsheep/scan-diagrams/internal/imaging"
	"github.com/ironsheep/scan-diagrams/internal/model"
	"github.com/ironsheep/scan-diagrams/internal/ocr"
)

// evaluateRecord is one line of --json output.
type evaluateRecord struct {
	Rule    string `json:"rule"`
	Group   string `json:"group"`
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// newEngine returns the OCR engine described by the configuration.
func (c *CLI) newEngine() *ocr.Engine {
	return &ocr.Engine{Language: c.Config.OCRLanguage, Upscale: c.Config.OCRUpscale}
}

func (c *CLI) evaluateCommand() *cobra.Command {
	var (
		language   string
		singleLine bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate [ruleset] [scan]",
		Short: "Read every rule's field from a page scan and report which rules match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			set, err := model.LoadRuleSet(args[0])
			if err != nil {
				return err
			}
			scan, err := imaging.NewImageCache().Load(args[1])
			if err != nil {
				return err
			}

			engine := c.newEngine()
			engine.SingleLine = singleLine

			results, err := evaluate.Evaluate(ctx, set.Rules, set.Groups, scan, engine, evaluate.Options{Language: language})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			enc := json.NewEncoder(w)
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					logger.Debug("rule failed", "rule", r.Rule.String(), "err", r.Err)
				}
				if asJSON {
					if err := enc.Encode(record(r)); err != nil {
						return err
					}
					continue
				}
				switch {
				case r.Err != nil:
					printFailure(w, r.Rule.String(), r.Err)
				case r.Matched:
					printMatch(w, r.Rule.String(), r.Text)
				default:
					printNoMatch(w, r.Rule.String(), r.Text)
				}
			}

			prog.done(fmt.Sprintf("Evaluated %d rules, %d matched, %d failed",
				len(results), len(evaluate.Matched(results)), failed))
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "Tesseract language, overrides ocr_language")
	cmd.Flags().BoolVar(&singleLine, "single-line", false, "treat every field as a single line of text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per rule")

	return cmd
}

func record(r evaluate.Result) evaluateRecord {
	rec := evaluateRecord{
		Rule:    r.Rule.String(),
		Group:   r.Group,
		Text:    r.Text,
		Matched: r.Matched,
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
		rec.Code = string(errors.GetCode(r.Err))
	}
	return rec
}
