package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
	"github.com/ironsheep/regionswap-mcp/internal/landmarks"
	"github.com/ironsheep/regionswap-mcp/internal/shape"
)

// setMetrics is the printed description of one landmark set.
type setMetrics struct {
	Index int `json:"index"`
	shape.Metrics
	HullArea  float64   `json:"hull_area"`
	Curvature []float64 `json:"curvature,omitempty"`
}

func newMetricsCmd() *cobra.Command {
	var cardinality int

	cmd := &cobra.Command{
		Use:   "metrics <landmarks.json>",
		Short: "Describe the landmark sets of a landmark file",
		Long:  `Metrics prints, for every set in the file, its centroid, area, circularity, orientation, hull area and normalised curvature profile as JSON.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			sets, err := landmarks.ReadFile(args[0], cardinality)
			if err != nil {
				return err
			}

			out := make([]setMetrics, 0, len(sets))
			for i, set := range sets {
				m, err := shape.Describe(set)
				if err != nil {
					logger.Warn("skipping landmark set", "index", i, "err", err)
					continue
				}
				sm := setMetrics{
					Index:    i,
					Metrics:  *m,
					HullArea: geom.PolygonArea(geom.ConvexHull(set)),
				}
				if len(set) >= 3 {
					if profile, err := shape.CurvatureProfile(set); err == nil {
						sm.Curvature = profile
					} else {
						logger.Debug("curvature profile skipped", "index", i, "err", err)
					}
				}
				out = append(out, sm)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().IntVar(&cardinality, "cardinality", 0, "require every set to have exactly this many points (e.g. 68)")
	return cmd
}
