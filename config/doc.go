// Package config loads the environment-driven settings of a named logger.
//
// Every variable is read first as WRYTE_<LOGGER_NAME>_<VAR> and then as
// WRYTE_<VAR>, so one logger can override what applies to all of them.
// A YAML, TOML or JSON file named by WRYTE_CONFIG_FILE supplies values
// that no variable sets. Settings are validated before they are returned.
package config
