package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/phanxgames/reel"
)

var (
	logLevel    string
	logJSON     bool
	catalogPath string
	configPath  string
	country     string
)

func newLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(level)
	if logJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l, nil
}

func loadConfig() (reel.Config, error) {
	if configPath == "" {
		return reel.DefaultConfig(), nil
	}
	return reel.LoadConfig(configPath)
}

func loadCatalog() (*reel.Catalog, error) {
	cat, err := reel.LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	return cat.FilterCountry(country), nil
}

// session is an engine built from the persistent flags, without a source.
type session struct {
	engine  *reel.Engine
	catalog *reel.Catalog
	logger  *logrus.Logger
}

func newSession() (*session, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	e := reel.NewEngine(cfg)
	e.SetLogger(logger)
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		e.SetDebugMode(true)
	}
	logger.WithFields(logrus.Fields{
		"catalog":    catalogPath,
		"categories": len(cat.Categories),
		"country":    country,
		"session":    e.SessionID().String(),
	}).Info("catalog loaded")
	return &session{engine: e, catalog: cat, logger: logger}, nil
}
