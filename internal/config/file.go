package config

// This file loads the YAML config file. Expected shape:
//
//	rename_extensions: [.docx, .xlsx, .pdf]
//	days_threshold: 30
//	report:
//	  filename_pattern: file_refresh_report_{date}.csv
//	  save_in_target_directory: true

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML document. Pointer fields distinguish "absent"
// from zero values so a sparse file only overrides what it names.
type fileConfig struct {
	RenameExtensions []string `yaml:"rename_extensions"`
	DaysThreshold    *int     `yaml:"days_threshold"`
	Report           struct {
		FilenamePattern       *string `yaml:"filename_pattern"`
		SaveInTargetDirectory *bool   `yaml:"save_in_target_directory"`
	} `yaml:"report"`
}

// LoadFile overlays cfg with values from the YAML file at cfg.ConfigPath.
// A missing file is not an error: defaults hold and found reports false.
// A malformed file is an error so a typo never silently reverts to defaults.
func LoadFile(cfg *Config) (found bool, err error) {
	data, err := os.ReadFile(cfg.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("cannot read config %s: %w", cfg.ConfigPath, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return true, fmt.Errorf("cannot parse config %s: %w", cfg.ConfigPath, err)
	}

	if fc.RenameExtensions != nil {
		cfg.RenameExtensions = fc.RenameExtensions
	}
	if fc.DaysThreshold != nil {
		cfg.DaysThreshold = *fc.DaysThreshold
	}
	if fc.Report.FilenamePattern != nil {
		cfg.ReportPattern = *fc.Report.FilenamePattern
	}
	if fc.Report.SaveInTargetDirectory != nil {
		cfg.SaveInTargetDir = *fc.Report.SaveInTargetDirectory
	}
	return true, nil
}
