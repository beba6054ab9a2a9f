package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSettings_Defaults(t *testing.T) {
	s := &Settings{}

	if got := s.GetRedisAddr(); got != "localhost:6379" {
		t.Errorf("GetRedisAddr() default = %q, want %q", got, "localhost:6379")
	}
	if got := s.GetLogLevel(); got != DefaultLogLevel {
		t.Errorf("GetLogLevel() default = %q, want %q", got, DefaultLogLevel)
	}
	if s.DefaultNetwork != "" {
		t.Errorf("DefaultNetwork should be empty, got %q", s.DefaultNetwork)
	}
}

func TestSettings_Clear(t *testing.T) {
	s := &Settings{
		DefaultNetwork: "test",
		RedisAddr:      "redis:6379",
		LogLevel:       "debug",
	}

	s.Clear()

	if s.DefaultNetwork != "" || s.RedisAddr != "" || s.LogLevel != "" {
		t.Error("Clear() should reset all fields to empty")
	}
}

func TestSettings_SaveLoad(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "netmap-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "settings.json")

	original := &Settings{
		DefaultNetwork: "production",
		RedisAddr:      "redis.internal:6379",
		RedisDB:        2,
		LogLevel:       "debug",
	}

	if err := original.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if loaded.DefaultNetwork != original.DefaultNetwork {
		t.Errorf("DefaultNetwork mismatch: got %q, want %q", loaded.DefaultNetwork, original.DefaultNetwork)
	}
	if loaded.RedisAddr != original.RedisAddr {
		t.Errorf("RedisAddr mismatch: got %q, want %q", loaded.RedisAddr, original.RedisAddr)
	}
	if loaded.RedisDB != original.RedisDB {
		t.Errorf("RedisDB mismatch: got %d, want %d", loaded.RedisDB, original.RedisDB)
	}
	if loaded.LogLevel != original.LogLevel {
		t.Errorf("LogLevel mismatch: got %q, want %q", loaded.LogLevel, original.LogLevel)
	}
}

func TestSettings_LoadNonExistent(t *testing.T) {
	s, err := LoadFrom("/nonexistent/path/settings.json")
	if err != nil {
		t.Fatalf("LoadFrom() non-existent should not error: %v", err)
	}
	if s == nil {
		t.Fatal("LoadFrom() should return non-nil Settings")
	}
	if s.DefaultNetwork != "" {
		t.Error("LoadFrom() non-existent should return empty settings")
	}
}

func TestSettings_LoadInvalidJSON(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "netmap-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "settings.json")
	if err := os.WriteFile(path, []byte("invalid json {"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err = LoadFrom(path)
	if err == nil {
		t.Error("LoadFrom() with invalid JSON should error")
	}
}

func TestSettings_SaveCreatesDirectory(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "netmap-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "subdir", "nested", "settings.json")

	s := &Settings{DefaultNetwork: "test"}
	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() should create directories: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("SaveTo() should have created the file")
	}
}

func TestDefaultSettingsPath(t *testing.T) {
	path := DefaultSettingsPath()
	if path == "" {
		t.Error("DefaultSettingsPath() should not be empty")
	}
	if !filepath.IsAbs(path) && path != "netmap_settings.json" {
		t.Errorf("DefaultSettingsPath() should be absolute or fallback, got %q", path)
	}
}

func TestLoad(t *testing.T) {
	originalHome := os.Getenv("HOME")
	defer os.Setenv("HOME", originalHome)

	tmpDir, err := os.MkdirTemp("", "netmap-test-home-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	os.Setenv("HOME", tmpDir)

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() with non-existent file should not error: %v", err)
	}
	if s == nil {
		t.Fatal("Load() should return non-nil Settings")
	}
	if s.DefaultNetwork != "" {
		t.Error("Load() with non-existent file should return empty settings")
	}

	netmapDir := filepath.Join(tmpDir, ".netmap")
	if err := os.MkdirAll(netmapDir, 0755); err != nil {
		t.Fatalf("Failed to create .netmap dir: %v", err)
	}

	settingsPath := filepath.Join(netmapDir, "settings.json")
	testSettings := `{"default_network":"test-network","redis_addr":"test-redis:6379"}`
	if err := os.WriteFile(settingsPath, []byte(testSettings), 0644); err != nil {
		t.Fatalf("Failed to write test settings: %v", err)
	}

	s, err = Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.DefaultNetwork != "test-network" {
		t.Errorf("Load() DefaultNetwork = %q, want %q", s.DefaultNetwork, "test-network")
	}
	if s.RedisAddr != "test-redis:6379" {
		t.Errorf("Load() RedisAddr = %q, want %q", s.RedisAddr, "test-redis:6379")
	}
}

func TestSave(t *testing.T) {
	originalHome := os.Getenv("HOME")
	defer os.Setenv("HOME", originalHome)

	tmpDir, err := os.MkdirTemp("", "netmap-test-home-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	os.Setenv("HOME", tmpDir)

	s := &Settings{
		DefaultNetwork: "saved-network",
		RedisAddr:      "saved-redis:6379",
	}

	if err := s.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	expectedPath := filepath.Join(tmpDir, ".netmap", "settings.json")
	if _, err := os.Stat(expectedPath); os.IsNotExist(err) {
		t.Fatalf("Save() did not create file at %s", expectedPath)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}
	if loaded.DefaultNetwork != "saved-network" {
		t.Errorf("After Save(), DefaultNetwork = %q, want %q", loaded.DefaultNetwork, "saved-network")
	}
	if loaded.RedisAddr != "saved-redis:6379" {
		t.Errorf("After Save(), RedisAddr = %q, want %q", loaded.RedisAddr, "saved-redis:6379")
	}
}

func TestDefaultSettingsPath_NoHome(t *testing.T) {
	originalHome := os.Getenv("HOME")
	defer os.Setenv("HOME", originalHome)

	os.Unsetenv("HOME")

	path := DefaultSettingsPath()
	if path != "netmap_settings.json" {
		t.Errorf("DefaultSettingsPath() with no HOME = %q, want %q", path, "netmap_settings.json")
	}
}

func TestLoadFrom_ReadError(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "netmap-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dirAsFile := filepath.Join(tmpDir, "settings.json")
	if err := os.Mkdir(dirAsFile, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	_, err = LoadFrom(dirAsFile)
	if err == nil {
		t.Error("LoadFrom() should error when path is a directory")
	}
}

func TestSaveTo_MkdirError(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "netmap-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	blockingFile := filepath.Join(tmpDir, "blocker")
	if err := os.WriteFile(blockingFile, []byte("blocking"), 0644); err != nil {
		t.Fatalf("Failed to create blocking file: %v", err)
	}

	path := filepath.Join(blockingFile, "subdir", "settings.json")
	s := &Settings{DefaultNetwork: "test"}

	err = s.SaveTo(path)
	if err == nil {
		t.Error("SaveTo() should fail when directory creation fails")
	}
}
