package services

import (
	"go.uber.org/atomic"

	"tankwatch/internal/models"
)

type SampleServiceInterface interface {
	AddBatch(batch *models.SampleBatch)
	GetBufferSize() int
	SwitchBuffer()
	GetNotActiveBuffer() []*models.SampleBatch
	ClearNotActiveBuffer()
	Store() *models.WeekStore
	Coverage() *models.CoverageIndex
	GetRegions() []string
	TankCount(region string) int
	GetSnapshot() (*models.Storage, error)
	PutSnapshot(storage *models.Storage) error
}

// SampleService buffers incoming scene batches in one of two buffers so
// ingest never blocks on aggregation. The scheduler flips the buffers and
// drains the inactive one.
type SampleService struct {
	buffer1Active atomic.Bool
	buffer1       []*models.SampleBatch
	buffer2       []*models.SampleBatch

	store    *models.WeekStore
	coverage *models.CoverageIndex
}

func NewSampleService() SampleServiceInterface {
	s := &SampleService{
		buffer1:  make([]*models.SampleBatch, 0),
		buffer2:  make([]*models.SampleBatch, 0),
		store:    models.NewWeekStore(),
		coverage: models.NewCoverageIndex(),
	}
	s.buffer1Active.Store(true)
	return s
}

func (s *SampleService) AddBatch(batch *models.SampleBatch) {
	if s.buffer1Active.Load() {
		s.buffer1 = append(s.buffer1, batch)
	} else {
		s.buffer2 = append(s.buffer2, batch)
	}
}

func (s *SampleService) GetBufferSize() int {
	if s.buffer1Active.Load() {
		return len(s.buffer1)
	}
	return len(s.buffer2)
}

func (s *SampleService) SwitchBuffer() {
	s.buffer1Active.Store(!s.buffer1Active.Load())
}

func (s *SampleService) GetNotActiveBuffer() []*models.SampleBatch {
	if s.buffer1Active.Load() {
		return s.buffer2
	}
	return s.buffer1
}

func (s *SampleService) ClearNotActiveBuffer() {
	if s.buffer1Active.Load() {
		s.buffer2 = make([]*models.SampleBatch, 0)
	} else {
		s.buffer1 = make([]*models.SampleBatch, 0)
	}
}

func (s *SampleService) Store() *models.WeekStore {
	return s.store
}

func (s *SampleService) Coverage() *models.CoverageIndex {
	return s.coverage
}

func (s *SampleService) GetRegions() []string {
	return s.store.Regions()
}

func (s *SampleService) TankCount(region string) int {
	return s.store.TankCount(region)
}

func (s *SampleService) GetSnapshot() (*models.Storage, error) {
	coverage, err := s.coverage.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &models.Storage{
		Version:  models.StorageVersion,
		Regions:  s.store.GetData(),
		Coverage: coverage,
	}, nil
}

func (s *SampleService) PutSnapshot(storage *models.Storage) error {
	if storage.Regions != nil {
		s.store.PutData(storage.Regions)
	}
	if len(storage.Coverage) > 0 {
		if err := s.coverage.UnmarshalBinary(storage.Coverage); err != nil {
			return err
		}
	}
	return nil
}
