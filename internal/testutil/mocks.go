package testutil

import (
	"sync"

	"tankwatch/internal/models"
	"tankwatch/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockSampleService implements services.SampleServiceInterface.
type MockSampleService struct {
	mu             sync.Mutex
	AddBatchCalls  []*models.SampleBatch
	SwitchCalls    int
	ClearCalls     int
	InactiveBuffer []*models.SampleBatch
	WeekStore      *models.WeekStore
	CoverageIndex  *models.CoverageIndex
	Snapshot       *models.Storage
	SnapshotErr    error
	PutCalls       []*models.Storage
}

func NewMockSampleService() *MockSampleService {
	return &MockSampleService{
		WeekStore:     models.NewWeekStore(),
		CoverageIndex: models.NewCoverageIndex(),
	}
}

func (m *MockSampleService) AddBatch(batch *models.SampleBatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddBatchCalls = append(m.AddBatchCalls, batch)
}

func (m *MockSampleService) GetBufferSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.AddBatchCalls)
}

func (m *MockSampleService) SwitchBuffer() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SwitchCalls++
}

func (m *MockSampleService) GetNotActiveBuffer() []*models.SampleBatch {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.InactiveBuffer
}

func (m *MockSampleService) ClearNotActiveBuffer() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	m.InactiveBuffer = nil
}

func (m *MockSampleService) Store() *models.WeekStore {
	return m.WeekStore
}

func (m *MockSampleService) Coverage() *models.CoverageIndex {
	return m.CoverageIndex
}

func (m *MockSampleService) GetRegions() []string {
	return m.WeekStore.Regions()
}

func (m *MockSampleService) TankCount(region string) int {
	return m.WeekStore.TankCount(region)
}

func (m *MockSampleService) GetSnapshot() (*models.Storage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SnapshotErr != nil {
		return nil, m.SnapshotErr
	}
	if m.Snapshot != nil {
		return m.Snapshot, nil
	}
	return &models.Storage{
		Version: models.StorageVersion,
		Regions: m.WeekStore.GetData(),
	}, nil
}

func (m *MockSampleService) PutSnapshot(storage *models.Storage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls = append(m.PutCalls, storage)
	if storage.Regions != nil {
		m.WeekStore.PutData(storage.Regions)
	}
	return nil
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
