package cli

import (
	"fmt"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/spf13/cobra"

	"github.com/ironsheep/regionswap-mcp/internal/align"
	"github.com/ironsheep/regionswap-mcp/internal/blend"
	"github.com/ironsheep/regionswap-mcp/internal/compositor"
	"github.com/ironsheep/regionswap-mcp/internal/imaging"
	"github.com/ironsheep/regionswap-mcp/internal/landmarks"
)

type swapOptions struct {
	landmarks string
	output    string
	mode      string
	levels    int
	estimator string
	scale     float64
}

func newSwapCmd(opts *options) *cobra.Command {
	so := &swapOptions{}

	cmd := &cobra.Command{
		Use:   "swap <image>",
		Short: "Swap landmark-delimited regions of an image",
		Long: `Swap reads the landmark sets for <image> from a JSON file and swaps them pairwise:
(0,1), (2,3), ...; with an odd count the last set pairs with the first.
The result is written as PNG.

Flags left unset fall back to the configuration file and environment.`,
		Example: `  regionswap swap group.jpg --landmarks group.json --out swapped.png
  regionswap swap group.jpg --landmarks group.json --out swapped.png --mode seamless --scale 0.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwap(cmd, opts, so, args[0])
		},
	}

	cmd.Flags().StringVarP(&so.landmarks, "landmarks", "l", "", "landmark file ({\"regions\": [[[x, y], ...], ...]})")
	cmd.Flags().StringVarP(&so.output, "out", "o", "", "output PNG path")
	cmd.Flags().StringVarP(&so.mode, "mode", "m", "", "blend mode: pyramid, hard or seamless")
	cmd.Flags().IntVar(&so.levels, "levels", 0, "Laplacian pyramid depth")
	cmd.Flags().StringVarP(&so.estimator, "estimator", "e", "", "transform estimator: three_point or similarity")
	cmd.Flags().Float64Var(&so.scale, "scale", 0, "resize the image (and landmarks) by this factor first")
	_ = cmd.MarkFlagRequired("landmarks")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runSwap(cmd *cobra.Command, opts *options, so *swapOptions, path string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := opts.cfg

	mode := cfg.Mode()
	if so.mode != "" {
		m, err := blend.ParseMode(so.mode)
		if err != nil {
			return err
		}
		mode = m
	}
	levels := cfg.Levels
	if cmd.Flags().Changed("levels") {
		if so.levels < 1 {
			return fmt.Errorf("levels must be >= 1, got %d", so.levels)
		}
		levels = so.levels
	}
	estName := cfg.Estimator
	if so.estimator != "" {
		estName = so.estimator
	}
	est, err := align.NewEstimator(estName, landmarks.AffineAnchors)
	if err != nil {
		return err
	}
	scale := cfg.Scale
	if so.scale != 0 {
		scale = so.scale
	}
	if scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", scale)
	}

	img, err := imgio.Open(path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	scaled := imaging.Scale(img, scale)
	logger.Debug("image loaded", "path", path,
		"width", scaled.Bounds().Dx(), "height", scaled.Bounds().Dy(), "scale", scale)

	provider := landmarks.Scaled{Source: landmarks.NewFileProvider(so.landmarks), Factor: scale}
	geometry := imaging.NewGeometry(cfg.PoissonIterations)
	c := compositor.New(geometry, est, mode, levels, logger)

	out, failures, err := c.SwapDetected(ctx, scaled, provider)
	if err != nil {
		return err
	}

	if err := imgio.Save(so.output, out, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save %s: %w", so.output, err)
	}

	if len(failures) > 0 {
		msgs := make([]string, len(failures))
		for i, f := range failures {
			msgs[i] = f.Error()
		}
		logger.Warn("some regions were not swapped", "failed", len(failures), "errors", strings.Join(msgs, "; "))
	}
	logger.Info("wrote swapped image", "path", so.output, "mode", mode, "failed_pairs", len(failures))
	return nil
}
