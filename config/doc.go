// Package config loads the optional lazyk TOML configuration file
// (BurntSushi/toml, the codebase's own config-parsing library) and
// validates it against a cuelang.org/go schema before use, so a malformed
// or out-of-range config fails fast at startup rather than being silently
// clamped.
package config
