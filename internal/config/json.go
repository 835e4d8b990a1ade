package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	Proxy struct {
		HTTPAddress     string   `json:"http_address"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"proxy,omitempty"`

	Upstream struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"upstream,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		HotCache struct {
			Size int `json:"size"`
		} `json:"hot_cache,omitempty"`
	} `json:"storage,omitempty"`

	Cache struct {
		Version         string   `json:"version"`
		Manifest        []string `json:"manifest"`
		OfflinePage     string   `json:"offline_page"`
		PlaceholderIcon string   `json:"placeholder_icon"`
	} `json:"cache,omitempty"`

	Routes struct {
		TaskPath      string `json:"task_path"`
		ControlPrefix string `json:"control_prefix"`
	} `json:"routes,omitempty"`

	Workers struct {
		SyncInterval    Duration `json:"sync_interval"`
		InstallRetryMax Duration `json:"install_retry_max"`
	} `json:"workers,omitempty"`

	LogLevel string `json:"log_level"`
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
		Proxy: Proxy{
			HTTPAddress:     jsonCfg.Proxy.HTTPAddress,
			ShutdownTimeout: time.Duration(jsonCfg.Proxy.ShutdownTimeout),
		},
		Upstream: Upstream{
			HTTPAddress:    jsonCfg.Upstream.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Upstream.RequestTimeout),
		},
		Storage: Storage{
			DB:       DB{DSN: jsonCfg.Storage.DB.DSN},
			HotCache: HotCache{Size: jsonCfg.Storage.HotCache.Size},
		},
		Cache: Cache{
			Version:         jsonCfg.Cache.Version,
			Manifest:        jsonCfg.Cache.Manifest,
			OfflinePage:     jsonCfg.Cache.OfflinePage,
			PlaceholderIcon: jsonCfg.Cache.PlaceholderIcon,
		},
		Routes: Routes{
			TaskPath:      jsonCfg.Routes.TaskPath,
			ControlPrefix: jsonCfg.Routes.ControlPrefix,
		},
		Workers: Workers{
			SyncInterval:    time.Duration(jsonCfg.Workers.SyncInterval),
			InstallRetryMax: time.Duration(jsonCfg.Workers.InstallRetryMax),
		},
		LogLevel:     jsonCfg.LogLevel,
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
