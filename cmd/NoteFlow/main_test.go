package main

import "testing"

func TestChooseDriver(t *testing.T) {
	tests := []struct {
		name     string
		driver   string
		dsn      string
		expected string
	}{
		{"explicit memory", "memory", "", "memory"},
		{"explicit sqlite", "sqlite", "postgres://x", "sqlite"},
		{"explicit postgres", "postgres", "", "postgres"},
		{"case insensitive", "Postgres", "", "postgres"},
		{"postgres url inferred", "", "postgres://user@host/db", "postgres"},
		{"postgresql url inferred", "", "postgresql://user@host/db", "postgres"},
		{"file path defaults to sqlite", "", "/var/lib/noteflow/noteflow.db", "sqlite"},
		{"empty defaults to sqlite", "", "", "sqlite"},
		{"unknown driver falls back to inference", "mysql", "postgres://x", "postgres"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chooseDriver(tt.driver, tt.dsn); got != tt.expected {
				t.Errorf("chooseDriver(%q, %q) = %q, want %q", tt.driver, tt.dsn, got, tt.expected)
			}
		})
	}
}
