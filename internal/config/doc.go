// Package config provides configuration loading for apiroutes.
//
// Configuration is optional. When present it lives at the project root in one
// of the following files (the first one found wins):
//
//	apiroutes.json
//	apiroutes.toml
//	apiroutes.yaml
//	apiroutes.yml
//
// # Configuration File Structure
//
//	{
//	  "dir": "src/app/api",
//	  "output": "src/lib/apiRoutes.ts",
//	  "markers": ["route.ts", "route.js"],
//	  "prefix": "/api",
//	  "typeName": "ApiRoutes",
//	  "constName": "apiRoutes",
//	  "header": "/* eslint-disable */",
//	  "ignore": ["_*", "node_modules"],
//	  "followSymlinks": true
//	}
//
// TOML and YAML files use snake_case keys (type_name, const_name,
// follow_symlinks). Relative paths are resolved against the directory holding
// the config file, or the working directory when there is none.
//
// # Environment
//
// A .env file in the working directory is loaded first; variables already
// set in the environment take precedence over it. These variables override
// file values:
//
//	APIROUTES_DIR, APIROUTES_OUTPUT, APIROUTES_PREFIX, APIROUTES_MARKERS,
//	APIROUTES_TYPE_NAME, APIROUTES_CONST_NAME
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    return err
//	}
//	cfg.ApplyEnv()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
//	fmt.Println("Scanning", cfg.SourcePath())
package config
