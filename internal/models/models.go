package models

import (
	"time"
)

// AccountType identifies how an account authenticates
type AccountType string

const (
	AccountMicrosoft AccountType = "microsoft"
	AccountMojang    AccountType = "mojang"
	AccountOffline   AccountType = "offline"
)

// IsValidAccountType checks if an account type is valid
func IsValidAccountType(t AccountType) bool {
	switch t {
	case AccountMicrosoft, AccountMojang, AccountOffline:
		return true
	}
	return false
}

// Server is one entry of the distribution catalog
type Server struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Icon             string `json:"icon,omitempty"`
	MinecraftVersion string `json:"minecraftVersion"`
	Version          string `json:"version"`
	Address          string `json:"address,omitempty"`
	MainServer       bool   `json:"mainServer,omitempty"`
}

// Distribution is the remote catalog of servers
type Distribution struct {
	Version string   `json:"version"`
	RSS     string   `json:"rss,omitempty"`
	Servers []Server `json:"servers"`
}

// ServerByID returns the server with the given id
func (d *Distribution) ServerByID(id string) (Server, bool) {
	if d == nil {
		return Server{}, false
	}
	for _, s := range d.Servers {
		if s.ID == id {
			return s, true
		}
	}
	return Server{}, false
}

// MainServer returns the server flagged as main, or the first server when
// none is flagged.
func (d *Distribution) MainServer() (Server, bool) {
	if d == nil || len(d.Servers) == 0 {
		return Server{}, false
	}
	for _, s := range d.Servers {
		if s.MainServer {
			return s, true
		}
	}
	return d.Servers[0], true
}

// Account is an authenticated player profile
type Account struct {
	UUID        string      `json:"uuid"`
	DisplayName string      `json:"displayName"`
	Type        AccountType `json:"type,omitempty"`
	ExpiresAt   time.Time   `json:"expiresAt,omitempty"`
}

// Expired reports whether the account session expired before now.
// A zero ExpiresAt never expires.
func (a Account) Expired(now time.Time) bool {
	if a.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(a.ExpiresAt)
}

// Config represents persisted launcher state
type Config struct {
	SelectedServer  string    `json:"selectedServer,omitempty"`
	SelectedAccount string    `json:"selectedAccount,omitempty"`
	Accounts        []Account `json:"accounts,omitempty"`
	DistributionURL string    `json:"distributionUrl,omitempty"`
	CacheTTL        Duration  `json:"cacheTtl,omitempty"`
	Language        string    `json:"language,omitempty"`
}

// Duration is a time.Duration that marshals as a string such as "6h"
type Duration time.Duration

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}
