package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/paulmach/orb/geojson"

	"tankwatch/internal/providers"
	"tankwatch/internal/structures"
)

// Store keeps validated region FeatureCollections on disk and addresses
// them with users/<user>/oil-tankers/<region> asset IDs.
type Store struct {
	dir    string
	user   string
	logger providers.Logger
}

func NewStore(conf *structures.Config, logger providers.Logger) *Store {
	return &Store{
		dir:    conf.Assets.Dir,
		user:   conf.Assets.User,
		logger: logger,
	}
}

func (s *Store) AssetID(region string) string {
	return fmt.Sprintf("users/%s/oil-tankers/%s", s.user, region)
}

func (s *Store) path(region string) string {
	return filepath.Join(s.dir, region+".geojson")
}

// Validate rejects anything that is not a non-empty FeatureCollection.
func Validate(fc *geojson.FeatureCollection) error {
	if fc == nil {
		return fmt.Errorf("no feature collection")
	}
	if fc.Type != "" && fc.Type != "FeatureCollection" {
		return fmt.Errorf("type is %q, expected FeatureCollection", fc.Type)
	}
	if len(fc.Features) == 0 {
		return fmt.Errorf("no features found")
	}
	return nil
}

// Register validates and stores a region collection, returning its asset ID.
func (s *Store) Register(region string, fc *geojson.FeatureCollection) (string, error) {
	if err := Validate(fc); err != nil {
		return "", fmt.Errorf("validation failed for %s: %w", region, err)
	}
	if err := WriteFile(s.path(region), fc); err != nil {
		return "", err
	}
	assetID := s.AssetID(region)
	s.logger.Infof(providers.TypeFetch, "Registered %d features as %s", len(fc.Features), assetID)
	return assetID, nil
}

func (s *Store) Load(region string) (*geojson.FeatureCollection, error) {
	return ReadFile(s.path(region))
}

// LoadAll loads every requested region, skipping missing or empty assets
// with a warning. It fails only when nothing loads at all.
func (s *Store) LoadAll(regions []string) (*geojson.FeatureCollection, error) {
	var loaded []*geojson.FeatureCollection
	for _, region := range regions {
		fc, err := s.Load(region)
		if err != nil {
			s.logger.Warnf(providers.TypeFetch, "Asset %s unavailable: %s", s.AssetID(region), err)
			continue
		}
		if len(fc.Features) == 0 {
			s.logger.Warnf(providers.TypeFetch, "Asset %s exists but contains 0 features", s.AssetID(region))
			continue
		}
		s.logger.Infof(providers.TypeFetch, "Loaded %s: %d tanks", s.AssetID(region), len(fc.Features))
		loaded = append(loaded, fc)
	}

	if len(loaded) == 0 {
		return nil, fmt.Errorf("no valid storage tank assets found")
	}
	return Merge(loaded...), nil
}

// List returns the registered region names, sorted.
func (s *Store) List() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.geojson"))
	if err != nil {
		return nil, err
	}
	regions := make([]string, 0, len(files))
	for _, f := range files {
		regions = append(regions, strings.TrimSuffix(filepath.Base(f), ".geojson"))
	}
	sort.Strings(regions)
	return regions, nil
}

// WriteFile marshals a collection and writes it atomically.
func WriteFile(path string, fc *geojson.FeatureCollection) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, path)
}

func ReadFile(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("invalid GeoJSON in %s: %w", path, err)
	}
	return fc, nil
}
