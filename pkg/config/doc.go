// Package config provides run configuration loading for the history-log
// decoder.
//
// # Usage
//
// The CLI builds a RunConfig from flags and optionally overlays a YAML file
// via Load:
//
//	cfg := config.NewRunConfig()
//	cfg.HistPath = histFlag
//	cfg.CommandCodePath = cmdCodesFlag
//
//	if configFile != "" {
//	    if err := config.Load(configFile, cfg); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variable Substitution
//
// Load substitutes ${VAR_NAME} references in the YAML file against the
// process environment before unmarshaling:
//
//	hist_path: ${HIST_DIR}/current.hist
//	item_index_path: ${HIST_DIR}/item.index
package config
