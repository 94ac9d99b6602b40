package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetDefaultConfig(t *testing.T) {
	config := getDefaultConfig()

	// Test List defaults
	if !config.List.ShowHidden {
		t.Error("Expected ShowHidden to be true by default")
	}
	if config.List.Filter != "" {
		t.Errorf("Expected empty filter, got '%s'", config.List.Filter)
	}

	// Test Ops defaults
	if config.Ops.ConfirmDelete {
		t.Error("Expected ConfirmDelete to be false by default")
	}

	// Test UI defaults
	if !config.UI.Color {
		t.Error("Expected color to be enabled by default")
	}

	// Test Log defaults
	if config.Log.Level != "warn" {
		t.Errorf("Expected default log level 'warn', got '%s'", config.Log.Level)
	}
	if config.Log.Format != "console" {
		t.Errorf("Expected default log format 'console', got '%s'", config.Log.Format)
	}

	// Test SMB defaults
	if config.SMB.RememberCredentials {
		t.Error("Expected RememberCredentials to be false by default")
	}
	if config.SMB.Timeout() != 5*time.Second {
		t.Errorf("Expected default dial timeout 5s, got %v", config.SMB.Timeout())
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestMergeConfigs(t *testing.T) {
	config := getDefaultConfig()
	hidden := false
	filter := " *.go "
	level := "DEBUG"
	timeout := "2s"

	var fc fileConfig
	fc.List.ShowHidden = &hidden
	fc.List.Filter = &filter
	fc.Log.Level = &level
	fc.SMB.DialTimeout = &timeout

	mergeConfigs(config, &fc)

	if config.List.ShowHidden {
		t.Error("Expected merged ShowHidden to be false")
	}
	if config.List.Filter != "*.go" {
		t.Errorf("Expected trimmed filter '*.go', got '%s'", config.List.Filter)
	}
	if config.Log.Level != "debug" {
		t.Errorf("Expected lowercased level 'debug', got '%s'", config.Log.Level)
	}
	if config.SMB.Timeout() != 2*time.Second {
		t.Errorf("Expected merged timeout 2s, got %v", config.SMB.Timeout())
	}
	// untouched values keep their defaults
	if !config.UI.Color {
		t.Error("Expected color to keep its default")
	}
	if config.Log.Format != "console" {
		t.Errorf("Expected format to keep its default, got '%s'", config.Log.Format)
	}
}

func TestManagerInterface(t *testing.T) {
	var manager ManagerInterface = NewManager(filepath.Join(t.TempDir(), "config.toml"))
	if manager == nil {
		t.Error("Manager should implement ManagerInterface")
	}
}

func TestGetConfigPath(t *testing.T) {
	path := getConfigPath()

	if path == "" {
		t.Error("Config path should not be empty")
	}
	if !strings.HasSuffix(path, "config.toml") {
		t.Errorf("Config path should end with 'config.toml', got '%s'", path)
	}
	if NewManager("").Path() != path {
		t.Error("Empty path should select the platform default")
	}
}

func TestManagerLoadNonExistentFile(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "missing", "config.toml"))

	config, err := manager.Load()
	if err != nil {
		t.Errorf("Load should not return error for non-existent file, got: %v", err)
	}
	if config == nil {
		t.Fatal("Load should return default config for non-existent file")
	}
	if manager.FromFile() {
		t.Error("FromFile should be false without a file")
	}
	if !config.List.ShowHidden {
		t.Error("Should return default config")
	}
}

func TestManagerLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[ops]
confirm_delete = true

[ui]
color = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	manager := NewManager(path)
	config, err := manager.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !manager.FromFile() {
		t.Error("FromFile should be true")
	}
	if !config.Ops.ConfirmDelete {
		t.Error("Expected confirm_delete from file")
	}
	if config.UI.Color {
		t.Error("Expected explicit false to override the default")
	}
	if !config.List.ShowHidden {
		t.Error("Absent show_hidden should keep its default")
	}
}

func TestManagerLoadInvalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"malformed", "[list\nshow_hidden = yes"},
		{"bad level", "[log]\nlevel = \"loud\""},
		{"bad format", "[log]\nformat = \"xml\""},
		{"bad filter", "[list]\nfilter = \"[a-\""},
		{"bad timeout", "[smb]\ndial_timeout = \"soon\""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := NewManager(path).Load(); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestManagerLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "Error")
	t.Setenv(EnvLogFile, "/tmp/sfm-test.log")

	config, err := NewManager(filepath.Join(t.TempDir(), "config.toml")).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Log.Level != "error" {
		t.Errorf("Expected env level 'error', got '%s'", config.Log.Level)
	}
	if config.Log.File != "/tmp/sfm-test.log" {
		t.Errorf("Expected env log file, got '%s'", config.Log.File)
	}
}

func TestManagerSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.toml")
	manager := NewManager(configPath)

	testConfig := getDefaultConfig()
	testConfig.List.ShowHidden = false
	testConfig.List.Filter = "*.{md,txt}"
	testConfig.Ops.ConfirmDelete = true
	testConfig.SMB.DialTimeout = "750ms"

	if err := manager.Save(testConfig); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedConfig, err := manager.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loadedConfig.List.ShowHidden {
		t.Error("Expected loaded ShowHidden to be false")
	}
	if loadedConfig.List.Filter != "*.{md,txt}" {
		t.Errorf("Expected loaded filter, got '%s'", loadedConfig.List.Filter)
	}
	if !loadedConfig.Ops.ConfirmDelete {
		t.Error("Expected loaded ConfirmDelete to be true")
	}
	if loadedConfig.SMB.Timeout() != 750*time.Millisecond {
		t.Errorf("Expected loaded timeout 750ms, got %v", loadedConfig.SMB.Timeout())
	}
}
