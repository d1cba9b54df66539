package save

import (
	"errors"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/logger"
)

const preferencesObject = "preferences"

// Backend is the key/value storage the preferences record lives in.
type Backend interface {
	SaveObjectProp(object, prop string, data []byte) error
	LoadObjectProp(object, prop string) ([]byte, error)
	ObjectPropExists(object, prop string) bool
}

// Store reads and writes the preferences record. A Store without a backend
// loads nothing and silently drops saves.
type Store struct {
	backend Backend
	name    string
}

// Open resolves the platform storage for appName. Failure to resolve it is
// logged and yields a Store without a backend.
func Open(appName, fileName string) *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("preferences storage unavailable",
			zap.String("app", appName), zap.Error(err))
		return &Store{name: fileName}
	}
	return NewStore(m, fileName)
}

// NewStore creates a Store over backend.
func NewStore(backend Backend, fileName string) *Store {
	return &Store{backend: backend, name: fileName}
}

// Available reports whether saves will be persisted.
func (s *Store) Available() bool {
	return s != nil && s.backend != nil
}

// Load reads the record, filling absent fields from defaults. It returns
// ErrNoData when nothing is stored and ErrCorrupt for unreadable records;
// in both cases the returned preferences equal defaults.
func (s *Store) Load(defaults Preferences) (Preferences, error) {
	if !s.Available() || !s.backend.ObjectPropExists(preferencesObject, s.name) {
		return defaults, ErrNoData
	}
	data, err := s.backend.LoadObjectProp(preferencesObject, s.name)
	if err != nil {
		return defaults, errors.Join(ErrNoData, err)
	}
	return Unmarshal(data, defaults)
}

// Save writes p.
func (s *Store) Save(p Preferences) error {
	if !s.Available() {
		logger.Debug("preferences not saved, no storage")
		return nil
	}
	return s.backend.SaveObjectProp(preferencesObject, s.name, Marshal(p))
}
