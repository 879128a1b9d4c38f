package cli

import (
	"encoding/json"
	"image"

	"github.com/spf13/cobra"
	"golang.org/x/image/font/basicfont"

	"github.com/ironsheep/scan-diagrams/internal/diagram"
	"github.com/ironsheep/scan-diagrams/internal/errors"
	"github.com/ironsheep/scan-diagrams/internal/evaluate"
	"github.com/ironsheep/scan-diagrams/internal/geometry"
	"github.com/ironsheep/scan-diagrams/internal/imaging"
	"github.com/ironsheep/scan-diagrams/internal/model"
)

// rescaleResult is printed by the rescale command.
type rescaleResult struct {
	Rescaled geometry.Rescaled `json:"rescaled"`

	// Rect is Rescaled with its corners ordered.
	Rect image.Rectangle `json:"rect"`
}

func (c *CLI) rescaleCommand() *cobra.Command {
	var region, source, offset []float64
	var dest []int

	cmd := &cobra.Command{
		Use:   "rescale",
		Short: "Map a canvas region into scan pixel coordinates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(region) != 4 {
				return errors.New(errors.ErrCodeInvalidInput, "--region needs x1,y1,x2,y2, got %v", region)
			}
			if len(source) != 2 || len(dest) != 2 {
				return errors.New(errors.ErrCodeInvalidDimension, "--source and --dest need width,height")
			}
			if len(offset) != 2 {
				return errors.New(errors.ErrCodeInvalidInput, "--offset needs x,y, got %v", offset)
			}

			r := geometry.Region{X1: region[0], Y1: region[1], X2: region[2], Y2: region[3]}
			src := geometry.SourceSpace{Width: source[0], Height: source[1], OffsetX: offset[0], OffsetY: offset[1]}
			dst := geometry.DestSpace{Width: dest[0], Height: dest[1]}

			out, err := geometry.Rescale(&r, src, dst)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("rescaled", "region", r, "source", src, "dest", dst)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rescaleResult{Rescaled: *out, Rect: out.Normalized()})
		},
	}

	cmd.Flags().Float64SliceVar(&region, "region", nil, "region x1,y1,x2,y2 in canvas units")
	cmd.Flags().Float64SliceVar(&source, "source", nil, "canvas width,height")
	cmd.Flags().Float64SliceVar(&offset, "offset", []float64{0, 0}, "canvas display offset x,y")
	cmd.Flags().IntSliceVar(&dest, "dest", nil, "scan width,height in pixels")
	_ = cmd.MarkFlagRequired("region")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("dest")

	return cmd
}

func (c *CLI) boundsCommand() *cobra.Command {
	var (
		out    outputFlags
		scan   string
		grid   int
		hidden bool
		thick  int
	)

	cmd := &cobra.Command{
		Use:   "bounds [ruleset]",
		Short: "Print every group's box in scan pixels, optionally drawn over the scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			set, err := model.LoadRuleSet(args[0])
			if err != nil {
				return err
			}

			if scan == "" {
				for _, g := range set.Groups {
					box, err := g.ScaledBoundingRectangle()
					if err != nil {
						logger.Warn("skipped", "group", g.Name, "err", err)
						continue
					}
					if box == nil {
						logger.Debug("group has no regions", "group", g.Name)
						continue
					}
					printBox(cmd.OutOrStdout(), g.Name, box.X, box.Y, box.X2, box.Y2)
				}
				return nil
			}

			img, err := imaging.NewImageCache().Load(scan)
			if err != nil {
				return err
			}
			groups := make([]model.Group, len(set.Groups))
			for i, g := range set.Groups {
				groups[i] = evaluate.FitToScan(g, img.Bounds())
			}

			drawn, boxes := diagram.Groups(img, groups, diagram.GroupsOptions{
				Style:      c.style(logger),
				Thickness:  thick,
				Grid:       grid,
				ShowHidden: hidden,
			})
			for _, b := range boxes {
				printBox(cmd.ErrOrStderr(), b.Group, b.Box.X, b.Box.Y, b.Box.X2, b.Box.Y2)
			}
			return c.writeImage(ctx, cmd, drawn, &out)
		},
	}

	out.register(cmd)
	cmd.Flags().StringVar(&scan, "scan", "", "page scan to draw the boxes on")
	cmd.Flags().IntVar(&grid, "grid", 0, "coordinate grid spacing in pixels, 0 for none")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "include hidden groups")
	cmd.Flags().IntVar(&thick, "thickness", 3, "outline thickness")

	return cmd
}

func (c *CLI) debugRegionCommand() *cobra.Command {
	var (
		out    outputFlags
		region []int
		scale  float64
		grid   int
	)

	cmd := &cobra.Command{
		Use:   "debug-region [scan]",
		Short: "Crop a region of a scan and overlay a labelled coordinate grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if len(region) != 4 {
				return errors.New(errors.ErrCodeInvalidInput, "--region needs x1,y1,x2,y2, got %v", region)
			}
			img, err := imaging.NewImageCache().Load(args[0])
			if err != nil {
				return err
			}

			rect := image.Rect(region[0], region[1], region[2], region[3])
			crop, err := imaging.CropRegion(img, rect, scale)
			if err != nil {
				return err
			}

			canvas := imaging.CanvasFrom(crop)
			if grid > 0 {
				face := c.style(logger).Face
				if face == nil {
					face = basicfont.Face7x13
				}
				imaging.GridOverlay(canvas, grid, imaging.DefaultGridColor, face)
			}
			logger.Debug("cropped region", "rect", rect, "scale", scale)
			return c.writeImage(ctx, cmd, canvas.Image(), &out)
		},
	}

	out.register(cmd)
	cmd.Flags().IntSliceVar(&region, "region", nil, "region x1,y1,x2,y2 in scan pixels")
	cmd.Flags().Float64Var(&scale, "scale", 1, "resize factor for the crop")
	cmd.Flags().IntVar(&grid, "grid", 50, "grid spacing in pixels, 0 for none")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}
