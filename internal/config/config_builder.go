package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flagsCfg, err := parseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagsCfg)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Proxy: Proxy{
			HTTPAddress:     "localhost:8081",
			ShutdownTimeout: 10 * time.Second,
		},
		Upstream: Upstream{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		Storage: Storage{
			DB:       DB{DSN: "todo-offline.db"},
			HotCache: HotCache{Size: 256},
		},
		Cache: Cache{
			Version: "todo-pwa-v1",
			Manifest: []string{
				"/",
				"/index.html",
				"/style.css",
				"/script.js",
				"/manifest.json",
				"/offline.html",
				"/icons/icon-192.png",
				"/icons/icon-512.png",
			},
			OfflinePage:     "/offline.html",
			PlaceholderIcon: "/icons/icon-192.png",
		},
		Routes: Routes{
			TaskPath:      "/api/todos",
			ControlPrefix: "/__offline",
		},
		Workers: Workers{
			SyncInterval:    time.Minute,
			InstallRetryMax: time.Minute,
		},
		LogLevel: "info",
	}
}
