package weekly

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"tankwatch/internal/providers"
	"tankwatch/internal/services"
	"tankwatch/internal/structures"
	"tankwatch/internal/weekly/interfaces"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.SampleServiceInterface
	aggregator  *Aggregator
	fileManager *FileManager
	cold        *ColdStorage
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.SampleServiceInterface, aggregator *Aggregator, fileManager *FileManager, cold *ColdStorage, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		aggregator:  aggregator,
		fileManager: fileManager,
		cold:        cold,
		metrics:     metrics,
	}
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	saveInterval := s.config.Persistence.SaveInterval
	compositeInterval := s.config.Composite.Interval

	s.cron.AddFunc(gron.Every(saveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted data to file %s", s.config.Persistence.FilePath)
	})

	s.cron.AddFunc(gron.Every(compositeInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		s.aggregator.Run()
		s.evictCold()
	})

	s.cron.Start()
}

// evictCold moves weeks that aged past the hot window into cold storage.
func (s *Scheduler) evictCold() {
	hot := s.config.Composite.HotWeeks
	if hot <= 0 {
		return
	}

	weeks := s.service.Store().Weeks()
	if len(weeks) <= hot {
		return
	}

	cutoff := weeks[len(weeks)-hot]
	evicted := s.service.Store().EvictBefore(cutoff)
	if len(evicted) == 0 {
		return
	}

	for _, e := range evicted {
		s.cold.Evict(e)
	}
	if err := s.cold.Flush(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Cold storage flush failed: %s", err)
		return
	}
	s.logger.Infof(providers.TypeApp, "Evicted %d tank-weeks older than %s to cold storage",
		len(evicted), cutoff)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	if err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath); err != nil {
		return err
	}
	return s.cold.RestoreIndex()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting tank-week data to file...")
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}
