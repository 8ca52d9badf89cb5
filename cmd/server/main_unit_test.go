package main

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"auto-diag.backend/internal/config"
	plog "auto-diag.backend/pkg/logger"
)

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origInitRedis := initRedis
	origOpenDB := openDB
	origRunServer := runServer

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		initRedis = origInitRedis
		openDB = origOpenDB
		runServer = origRunServer
	})
}

func baseTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port: "18080",
			Env:  "development",
		},
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			DBName:   "autodiag",
			SSLMode:  "disable",
		},
		Redis: config.RedisConfig{
			URL:         "redis://localhost:6379",
			KeyCacheTTL: 30 * time.Second,
		},
		JWT: config.JWTConfig{
			Secret:        "secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
		},
		Admin: config.AdminConfig{
			Email: "admin@autodiag.local",
		},
		Gateway: config.GatewayConfig{
			RateLimitWindow:    time.Minute,
			JanitorProbability: 0.05,
			JanitorRetention:   2 * time.Minute,
		},
	}
}

func sqliteOpener(name string) func(string) (*gorm.DB, error) {
	return func(string) (*gorm.DB, error) {
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

func TestRunMainProcess_DBOpenError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	openDB = func(string) (*gorm.DB, error) { return nil, errors.New("db open failed") }

	err := runMainProcess()
	if err == nil {
		t.Fatal("expected db open error")
	}
}

func TestRunMainProcess_RedisFailureIsNotFatal(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return errors.New("redis down") }
	openDB = sqliteOpener("main_redis_down")
	runServer = func(*gin.Engine, string) error { return nil }

	// boot completes without the key cache
	if err := runMainProcess(); err != nil {
		t.Fatalf("expected boot to continue without redis, got %v", err)
	}
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	openDB = sqliteOpener("main_server_err")
	runServer = func(*gin.Engine, string) error { return errors.New("listen failed") }

	err := runMainProcess()
	if err == nil {
		t.Fatal("expected server run error")
	}
}

func TestRunMainProcess_SuccessPath(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return errors.New("no .env") }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	openDB = sqliteOpener("main_success")
	runServer = func(*gin.Engine, string) error { return nil }

	if err := runMainProcess(); err != nil {
		t.Fatalf("expected clean boot, got %v", err)
	}
}
