// Package config holds the modalkeys configuration: logging, where the
// enabled flag is persisted, clipboard integration and Lua hooks.
//
// Configuration is read from a TOML or YAML file chosen by extension, then
// overridden by MODALKEYS_* environment variables:
//
//	MODALKEYS_LOG_LEVEL      log.level
//	MODALKEYS_LOG_FILE       log.file
//	MODALKEYS_SETTINGS       settings.path
//	MODALKEYS_WATCH          settings.watch
//	MODALKEYS_UNNAMEDPLUS    clipboard.unnamedplus
//	MODALKEYS_HOOKS          hooks.script
package config
