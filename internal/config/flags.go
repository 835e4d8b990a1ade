package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the command-line flags in args.
//
// Flags:
//
//	-a proxy listen address in format [host]:[port]
//	-u upstream address (URL or host:port)
//	-d database DSN
//	-c/-config json file path with configs
//	-cache-version cache generation name
//	-request-timeout upstream request timeout (e.g., "15s")
//	-sync-interval outbox drain interval (e.g., "1m")
//	-log-level zerolog level name
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("proxy", flag.ContinueOnError)

	var proxyAddress NetAddress
	var upstreamAddress string
	var databaseDSN string
	var jsonConfigPath string
	var cacheVersion string
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var logLevel string

	fs.Var(&proxyAddress, "a", "Proxy listen address host:port")
	fs.StringVar(&upstreamAddress, "u", "", "Upstream address")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cacheVersion, "cache-version", "", "Cache generation name")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Upstream request timeout (e.g., 15s)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Outbox drain interval (e.g., 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Proxy: Proxy{
			HTTPAddress: proxyAddress.String(),
		},
		Upstream: Upstream{
			HTTPAddress:    upstreamAddress,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Cache: Cache{
			Version: cacheVersion,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		LogLevel:     logLevel,
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
