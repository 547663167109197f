package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		CookieSignKey string `json:"cookie_sign_key"`
		Environment   string `json:"environment"`
		Version       string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN       string `json:"dsn"`
			AuthToken string `json:"auth_token"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Session struct {
		RedisURL   string `json:"redis_url"`
		RedisToken string `json:"redis_token"`
	} `json:"session,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			CookieSignKey: jsonCfg.App.CookieSignKey,
			Environment:   jsonCfg.App.Environment,
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN:       jsonCfg.Storage.DB.DSN,
				AuthToken: jsonCfg.Storage.DB.AuthToken,
			},
		},
		Session: Session{
			RedisURL:   jsonCfg.Session.RedisURL,
			RedisToken: jsonCfg.Session.RedisToken,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
