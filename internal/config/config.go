package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/marcus/lobby/internal/models"
)

const configFile = "config.json"

// DefaultCacheTTL is how long a fetched distribution is trusted
const DefaultCacheTTL = 6 * time.Hour

// ErrAccountNotFound is returned when an account uuid is not stored
var ErrAccountNotFound = errors.New("account not found")

// DefaultDir returns the per-user configuration directory for lobby
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lobby"), nil
}

// Load reads the config from disk
func Load(baseDir string) (*models.Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Config{}, nil
		}
		return nil, err
	}

	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *models.Config) error {
	configPath := filepath.Join(baseDir, configFile)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Store keeps the loaded config in memory. Setters only touch memory;
// Save persists.
type Store struct {
	mu      sync.RWMutex
	baseDir string
	cfg     *models.Config
}

// Open loads the config in baseDir into a Store
func Open(baseDir string) (*Store, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return nil, err
	}
	return &Store{baseDir: baseDir, cfg: cfg}, nil
}

// Dir returns the directory the store persists to
func (s *Store) Dir() string {
	return s.baseDir
}

// Path returns the config file path
func (s *Store) Path() string {
	return filepath.Join(s.baseDir, configFile)
}

// Save writes the in-memory config to disk
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Save(s.baseDir, s.cfg)
}

// Reload replaces the in-memory config with what is on disk
func (s *Store) Reload() error {
	cfg, err := Load(s.baseDir)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current config
func (s *Store) Snapshot() models.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := *s.cfg
	cp.Accounts = append([]models.Account(nil), s.cfg.Accounts...)
	return cp
}

// SelectedServer returns the selected server id
func (s *Store) SelectedServer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.SelectedServer
}

// SetSelectedServer sets the selected server id
func (s *Store) SetSelectedServer(id string) {
	s.mu.Lock()
	s.cfg.SelectedServer = id
	s.mu.Unlock()
}

// Accounts returns the stored accounts in insertion order
func (s *Store) Accounts() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Account(nil), s.cfg.Accounts...)
}

// AuthAccounts returns the stored accounts keyed by uuid
func (s *Store) AuthAccounts() map[string]models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.Account, len(s.cfg.Accounts))
	for _, a := range s.cfg.Accounts {
		out[a.UUID] = a
	}
	return out
}

// SelectedAccount returns the selected account, if it is still stored
func (s *Store) SelectedAccount() (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(s.cfg.SelectedAccount)
}

// SelectedAccountID returns the raw selected account uuid
func (s *Store) SelectedAccountID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.SelectedAccount
}

// SetSelectedAccount selects the account with the given uuid and returns it.
// Unknown uuids leave the selection unchanged.
func (s *Store) SetSelectedAccount(uuid string) (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.findLocked(uuid)
	if !ok {
		return models.Account{}, false
	}
	s.cfg.SelectedAccount = uuid
	return acc, true
}

// AddAccount stores an account, replacing any with the same uuid. The first
// account added becomes the selection.
func (s *Store) AddAccount(acc models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cfg.Accounts {
		if s.cfg.Accounts[i].UUID == acc.UUID {
			s.cfg.Accounts[i] = acc
			return
		}
	}
	s.cfg.Accounts = append(s.cfg.Accounts, acc)
	if s.cfg.SelectedAccount == "" {
		s.cfg.SelectedAccount = acc.UUID
	}
}

// RemoveAccount deletes an account. Removing the selected account moves the
// selection to the first remaining account.
func (s *Store) RemoveAccount(uuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.cfg.Accounts {
		if s.cfg.Accounts[i].UUID == uuid {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrAccountNotFound
	}
	s.cfg.Accounts = append(s.cfg.Accounts[:idx], s.cfg.Accounts[idx+1:]...)
	if s.cfg.SelectedAccount == uuid {
		s.cfg.SelectedAccount = ""
		if len(s.cfg.Accounts) > 0 {
			s.cfg.SelectedAccount = s.cfg.Accounts[0].UUID
		}
	}
	return nil
}

// DistributionURL returns the configured catalog location
func (s *Store) DistributionURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.DistributionURL
}

// SetDistributionURL sets the catalog location
func (s *Store) SetDistributionURL(url string) {
	s.mu.Lock()
	s.cfg.DistributionURL = url
	s.mu.Unlock()
}

// CacheTTL returns the catalog cache TTL, falling back to DefaultCacheTTL
func (s *Store) CacheTTL() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg.CacheTTL <= 0 {
		return DefaultCacheTTL
	}
	return time.Duration(s.cfg.CacheTTL)
}

// Language returns the configured language tag
func (s *Store) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Language
}

func (s *Store) findLocked(uuid string) (models.Account, bool) {
	if uuid == "" {
		return models.Account{}, false
	}
	for _, a := range s.cfg.Accounts {
		if a.UUID == uuid {
			return a, true
		}
	}
	return models.Account{}, false
}

// SetSelectedServer persists the selected server id
func SetSelectedServer(baseDir string, id string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.SelectedServer = id
	return Save(baseDir, cfg)
}

// GetSelectedServer returns the persisted selected server id
func GetSelectedServer(baseDir string) (string, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return "", err
	}
	return cfg.SelectedServer, nil
}
