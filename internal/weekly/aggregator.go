package weekly

import (
	"time"

	"tankwatch/internal/providers"
	"tankwatch/internal/services"
	"tankwatch/internal/structures"
)

const (
	OutcomeAdmitted = "admitted"
	OutcomeMasked   = "masked"
	OutcomeRejected = "rejected"
)

// Aggregator drains the inactive sample buffer and folds admitted
// observations into the tank-week store.
type Aggregator struct {
	conf     *structures.Config
	logger   providers.Logger
	service  services.SampleServiceInterface
	calendar *Calendar
	metrics  providers.MetricsProviderInterface
}

func NewAggregator(conf *structures.Config, logger providers.Logger, service services.SampleServiceInterface, calendar *Calendar, metrics providers.MetricsProviderInterface) *Aggregator {
	return &Aggregator{
		conf:     conf,
		logger:   logger,
		service:  service,
		calendar: calendar,
		metrics:  metrics,
	}
}

// Run processes everything buffered since the previous tick. Scenes over
// the cloud threshold are rejected wholesale; surviving rows go through
// the per-row cloud mask before admission.
func (a *Aggregator) Run() {
	start := time.Now()

	a.service.SwitchBuffer()
	batches := a.service.GetNotActiveBuffer()

	admitted, masked, rejected := 0, 0, 0
	store := a.service.Store()
	coverage := a.service.Coverage()

	for _, batch := range batches {
		if batch.CloudyPixelPercent >= a.conf.Composite.MaxCloudPercent {
			rejected += len(batch.Rows)
			continue
		}

		week, ordinal, ok := a.calendar.WeekFor(batch.SceneTime)
		if !ok {
			rejected += len(batch.Rows)
			continue
		}

		for _, row := range batch.Rows {
			if CloudMasked(row.QA60, row.SCL) {
				masked++
				continue
			}

			point := PointFromRow(row, batch.SceneTime, batch.SolarZenithAngle)
			store.AddPoint(batch.Region, row.TankID, batch.Region, week, point)
			coverage.Add(row.TankID, ordinal)
			admitted++
		}
	}

	a.service.ClearNotActiveBuffer()

	a.metrics.IncSamples(OutcomeAdmitted, admitted)
	a.metrics.IncSamples(OutcomeMasked, masked)
	a.metrics.IncSamples(OutcomeRejected, rejected)
	for _, region := range a.service.GetRegions() {
		a.metrics.SetTanksTotal(region, a.service.TankCount(region))
	}
	a.metrics.ObserveAggregationDuration(time.Since(start))

	if admitted+masked+rejected > 0 {
		a.logger.Infof(providers.TypeApp, "Aggregated %d samples (%d masked, %d rejected)",
			admitted, masked, rejected)
	}
}
