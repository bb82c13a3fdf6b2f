package build

import (
	"fmt"

	"github.com/npillmayer/comicmono/fontedit"
)

// AdjustVerticalMetrics scales the glyphs of src to the cap height of ref,
// adopts the vertical metrics of ref (see fontedit.AdoptedFieldNames), and
// finally scales the glyphs of src by cosmetic. The adopted metrics are not
// affected by the second scaling.
// It returns the cap height scale factor.
func AdjustVerticalMetrics(src, ref *fontedit.Font, cosmetic float64) (float64, error) {
	srcCap, err := src.CapHeight()
	if err != nil {
		return 0, fmt.Errorf("source font %s: %w", src.FontName, err)
	}
	refCap, err := ref.CapHeight()
	if err != nil {
		return 0, fmt.Errorf("reference font %s: %w", ref.FontName, err)
	}
	scale := refCap / srcCap
	tracer().Infof("cap height %.1f → %.1f, scale %.4f", srcCap, refCap, scale)
	src.Scale(scale)
	src.Metrics.Adopt(ref.Metrics)
	tracer().Debugf("vertical metrics from %s: %s", ref.FontName, src.Metrics)
	src.Scale(cosmetic)
	return scale, nil
}
