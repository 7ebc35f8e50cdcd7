// Package config loads fixtree settings.
//
// Layers, later ones winning:
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/fixtree/config.toml, or an explicit path
//  3. FIXTREE_<SECTION>_<KEY> environment variables
//     (FIXTREE_RENDER_REDACT_MESSAGE sets render.redact_message)
package config
