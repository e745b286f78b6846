// Package config defines the run configuration for a single decode invocation,
// loadable from CLI flags or an optional YAML file via Load.
//
// Example usage:
//
//	cfg := config.NewRunConfig()
//	cfg.HistPath = "history.txt"
//	cfg.CommandCodePath = "custom/cmdcode"
//	cfg.DataCodePath = "custom/datacode"
//	cfg.DocumentStore = true
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"fmt"
	"time"
)

// RunConfig holds everything needed to drive a single decode run: the
// history file and code-table paths, the optional timestamp range gate, and
// output/performance settings.
type RunConfig struct {
	// HistPath is the history log file to decode.
	HistPath string `yaml:"hist_path" json:"hist_path"`
	// CommandCodePath points at the pipe-delimited command code table.
	CommandCodePath string `yaml:"command_code_path" json:"command_code_path"`
	// DataCodePath points at the pipe-delimited data code table.
	DataCodePath string `yaml:"data_code_path" json:"data_code_path"`
	// ClientCodePath points at the pipe-delimited client-type code table.
	ClientCodePath string `yaml:"client_code_path" json:"client_code_path"`
	// ItemIndexPath points at the item barcode index, empty to disable
	// item lookups.
	ItemIndexPath string `yaml:"item_index_path" json:"item_index_path"`

	// RangeStart is the inclusive lower bound of the timestamp range gate,
	// in YYYYMMDDHHMMSS form. Empty means unbounded.
	RangeStart string `yaml:"range_start" json:"range_start"`
	// RangeEnd is the exclusive upper bound of the timestamp range gate.
	// Empty means unbounded.
	RangeEnd string `yaml:"range_end" json:"range_end"`

	// OutputPath is where decoded JSON is written; empty means stdout.
	OutputPath string `yaml:"output_path" json:"output_path"`
	// DocumentStore selects newline-delimited JSON output instead of a
	// single JSON array.
	DocumentStore bool `yaml:"document_store" json:"document_store"`

	// Debug enables verbose logging and an end-of-run code-usage report.
	Debug bool `yaml:"debug" json:"debug"`

	// Performance holds pooling and buffering knobs.
	Performance PerformanceConfig `yaml:"performance" json:"performance"`
}

// PerformanceConfig controls buffering and pooling for the streaming driver.
// The decoder is single-threaded per file by design, so this has no worker
// count -- only buffer sizing.
type PerformanceConfig struct {
	// BufferSize sets the initial size of the line-read buffer, in bytes.
	BufferSize int `yaml:"buffer_size" json:"buffer_size"`
	// EnablePools toggles use of pkg/json's buffer pool for record
	// encoding; disabling is useful for isolating GC behavior when debugging.
	EnablePools bool `yaml:"enable_pools" json:"enable_pools"`
	// FlushInterval controls how often the output writer is flushed when
	// writing to a file.
	FlushInterval time.Duration `yaml:"flush_interval" json:"flush_interval"`
}

// NewRunConfig returns a RunConfig with sensible defaults; callers then set
// HistPath and the code-table paths from CLI flags.
func NewRunConfig() *RunConfig {
	return &RunConfig{
		Performance: PerformanceConfig{
			BufferSize:    64 * 1024,
			EnablePools:   true,
			FlushInterval: 5 * time.Second,
		},
	}
}

// Validate checks that the configuration names the files it needs to read.
func (c *RunConfig) Validate() error {
	if c.HistPath == "" {
		return fmt.Errorf("hist_path is required")
	}
	if c.CommandCodePath == "" {
		return fmt.Errorf("command_code_path is required")
	}
	if c.DataCodePath == "" {
		return fmt.Errorf("data_code_path is required")
	}
	if c.RangeStart != "" && c.RangeEnd != "" && c.RangeStart > c.RangeEnd {
		return fmt.Errorf("range_start must not be after range_end")
	}
	if c.Performance.BufferSize <= 0 {
		return fmt.Errorf("buffer_size must be positive")
	}
	return nil
}

// HasRange reports whether either end of the timestamp range gate is set.
func (c *RunConfig) HasRange() bool {
	return c.RangeStart != "" || c.RangeEnd != ""
}

// HasItemIndex reports whether an item barcode index was configured.
func (c *RunConfig) HasItemIndex() bool {
	return c.ItemIndexPath != ""
}
