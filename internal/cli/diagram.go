package cli

import (
	"context"
	"fmt"
	"image"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/scan-diagrams/internal/diagram"
	"github.com/ironsheep/scan-diagrams/internal/imaging"
	"github.com/ironsheep/scan-diagrams/internal/model"
)

const (
	defaultOverviewWidth  = 800
	defaultOverviewHeight = 50
)

// outputFlags says where a rendered image goes.
type outputFlags struct {
	path   string // explicit file; its extension picks the format
	format string // format for generated names in the output dir
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.path, "output", "o", "", "output file (.jpg or .png); default is a new file in the output dir")
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "format for generated file names: jpeg (default), png")
}

// style builds the renderer style, logging skipped elements through l.
func (c *CLI) style(l *log.Logger) diagram.Style {
	style, err := c.Config.Style(skipLogger(l))
	if err != nil {
		l.Warn("using fallback font", "font", c.Config.FontPath, "err", err)
	}
	return style
}

// writeImage saves img and prints its path on stdout.
func (c *CLI) writeImage(ctx context.Context, cmd *cobra.Command, img image.Image, o *outputFlags) error {
	logger := loggerFromContext(ctx)

	path := o.path
	if path != "" {
		if err := imaging.Save(path, img, c.Config.JPEGQuality); err != nil {
			return err
		}
	} else {
		out, err := c.Config.Output(o.format, true)
		if err != nil {
			return err
		}
		r, err := diagram.Render(img, out)
		if err != nil {
			return err
		}
		path = r.Path
	}

	b := img.Bounds()
	logger.Debug("wrote image", "path", path, "width", b.Dx(), "height", b.Dy())
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func (c *CLI) dimensionsCommand() *cobra.Command {
	var (
		out  outputFlags
		opts diagram.DimensionsOptions
	)

	cmd := &cobra.Command{
		Use:   "dimensions [project]",
		Short: "Draw the facing, side and perspective figures of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			project, err := model.LoadProject(args[0])
			if err != nil {
				return err
			}
			opts.Style = c.style(logger)
			img, err := diagram.Dimensions(project, opts)
			if err != nil {
				return err
			}
			if err := c.writeImage(ctx, cmd, img, &out); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered dimensions of %q", project.Name))
			return nil
		},
	}

	out.register(cmd)
	cmd.Flags().IntVar(&opts.Width, "width", 200, "minimum canvas width")
	cmd.Flags().IntVar(&opts.Height, "height", 200, "minimum canvas height")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 1, "pixels per unit")

	return cmd
}

func (c *CLI) overviewCommand() *cobra.Command {
	var (
		out         outputFlags
		orientation string
		opts        = diagram.OverviewOptions{Width: defaultOverviewWidth, Height: defaultOverviewHeight}
	)

	cmd := &cobra.Command{
		Use:   "overview [project]",
		Short: "Draw a strip of the book's steps coloured by category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			o, err := diagram.ParseOrientation(orientation)
			if err != nil {
				return err
			}
			opts.Orientation = o

			project, err := model.LoadProject(args[0])
			if err != nil {
				return err
			}
			opts.Style = c.style(logger)

			steps := project.Steps()
			logger.Debug("laid out steps", "steps", len(steps), "categories", len(project.Categories))

			img, err := diagram.Overview(project, opts)
			if err != nil {
				return err
			}
			if err := c.writeImage(ctx, cmd, img, &out); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered overview of %d steps", len(steps)))
			return nil
		},
	}

	out.register(cmd)
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().IntVar(&opts.Height, "height", opts.Height, "canvas height, not counting the colour key")
	cmd.Flags().StringVar(&orientation, "orientation", string(diagram.Horizontal), "horizontal or vertical")
	cmd.Flags().IntVar(&opts.StepOffset, "step-offset", 0, "number added to step labels")
	cmd.Flags().IntSliceVar(&opts.Texturing, "texture", nil, "per-step texturing, 0 draws the vertical texture")
	cmd.Flags().BoolVar(&opts.ColorKey, "key", false, "draw a colour key below the strip")

	return cmd
}

func (c *CLI) rulesCommand() *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "rules [ruleset]",
		Short: "Draw one panel per rule showing where its field sits on the page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			set, err := model.LoadRuleSet(args[0])
			if err != nil {
				return err
			}
			for _, r := range set.Rules {
				if err := r.Validate(); err != nil {
					logger.Warn("invalid rule", "rule", r.String(), "err", err)
				}
			}

			img, err := diagram.Rules(set.Rules, set.Groups, diagram.RuleOptions{Style: c.style(logger)})
			if err != nil {
				return err
			}
			if err := c.writeImage(ctx, cmd, img, &out); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered %d rules", len(set.Rules)))
			return nil
		},
	}

	out.register(cmd)
	return cmd
}
