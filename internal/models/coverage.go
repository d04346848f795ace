package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// CoverageIndex tracks, per tank, the set of week ordinals (weeks since
// the anchor date) that have at least one admitted observation. It is the
// fast path for "which tank-weeks are missing" queries.
type CoverageIndex struct {
	mu   sync.RWMutex
	data map[int64]*roaring.Bitmap
}

func NewCoverageIndex() *CoverageIndex {
	return &CoverageIndex{
		data: make(map[int64]*roaring.Bitmap),
	}
}

func (ci *CoverageIndex) Add(tankID int64, weekOrdinal uint32) {
	ci.mu.Lock()
	defer ci.mu.Unlock()

	bm, ok := ci.data[tankID]
	if !ok {
		bm = roaring.New()
		ci.data[tankID] = bm
	}
	bm.Add(weekOrdinal)
}

func (ci *CoverageIndex) Has(tankID int64, weekOrdinal uint32) bool {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	if bm, ok := ci.data[tankID]; ok {
		return bm.Contains(weekOrdinal)
	}
	return false
}

// ObservedWeeks returns the number of covered weeks for a tank.
func (ci *CoverageIndex) ObservedWeeks(tankID int64) uint64 {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	if bm, ok := ci.data[tankID]; ok {
		return bm.GetCardinality()
	}
	return 0
}

// Missing returns the week ordinals in [0, through] with no observation
// for the given tank.
func (ci *CoverageIndex) Missing(tankID int64, through uint32) []uint32 {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	var missing []uint32
	bm := ci.data[tankID]
	for ord := uint32(0); ord <= through; ord++ {
		if bm == nil || !bm.Contains(ord) {
			missing = append(missing, ord)
		}
	}
	return missing
}

func (ci *CoverageIndex) Tanks() int {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return len(ci.data)
}

// MarshalBinary serializes the index: count(uint32), then per tank
// id(int64) + length-prefixed roaring bytes. Little-endian throughout.
func (ci *CoverageIndex) MarshalBinary() ([]byte, error) {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	var buf bytes.Buffer
	if err := binary.Write(&buf, byteOrder, uint32(len(ci.data))); err != nil {
		return nil, err
	}
	for id, bm := range ci.data {
		if err := binary.Write(&buf, byteOrder, id); err != nil {
			return nil, err
		}
		bmBytes, err := bm.ToBytes()
		if err != nil {
			return nil, fmt.Errorf("serialize coverage bitmap for tank %d: %w", id, err)
		}
		if err := writeBytes(&buf, bmBytes); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (ci *CoverageIndex) UnmarshalBinary(data []byte) error {
	ci.mu.Lock()
	defer ci.mu.Unlock()

	buf := bytes.NewReader(data)
	var count uint32
	if err := binary.Read(buf, byteOrder, &count); err != nil {
		return err
	}

	parsed := make(map[int64]*roaring.Bitmap, count)
	for i := uint32(0); i < count; i++ {
		var id int64
		if err := binary.Read(buf, byteOrder, &id); err != nil {
			return err
		}
		bmBytes, err := readBytes(buf)
		if err != nil {
			return err
		}
		bm := roaring.New()
		if err := bm.UnmarshalBinary(bmBytes); err != nil {
			return fmt.Errorf("parse coverage bitmap for tank %d: %w", id, err)
		}
		parsed[id] = bm
	}

	ci.data = parsed
	return nil
}
