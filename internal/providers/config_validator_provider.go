package providers

import (
	"fmt"
	"time"

	"tankwatch/internal/geo"
	"tankwatch/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	// Weekly windows are anchored on the EIA release day.
	anchor, err := time.Parse("2006-01-02", cv.conf.Composite.AnchorDate)
	if err != nil {
		return fmt.Errorf("composite.anchorDate: %w", err)
	}
	if anchor.Weekday() != time.Wednesday {
		return fmt.Errorf("composite.anchorDate must be a Wednesday (EIA release day), got %s %s",
			anchor.Weekday(), anchor.Format("2006-01-02"))
	}

	for _, r := range cv.conf.Regions {
		if _, err := geo.ParseBbox(r.Bbox); err != nil {
			return fmt.Errorf("region %q: %w", r.Name, err)
		}
	}

	return nil
}
