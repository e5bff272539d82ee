// Package config resolves generator settings from flags, environment
// variables (SYNCGEN_*) and built-in defaults.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/ridoystarlord/syncproc/generator"
)

const EnvPrefix = "SYNCGEN"

// Setting keys.
const (
	KeyDatabase       = "database"
	KeySchema         = "schema"
	KeyKeyStrategy    = "key_strategy"
	KeyKeyColumn      = "key_column"
	KeyFixedTargetKey = "fixed_target_key"
	KeyFixedSourceKey = "fixed_source_key"
	KeyComparison     = "comparison"
)

// Configure sets the environment binding and defaults on v.
func Configure(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := generator.DefaultOptions()
	v.SetDefault(KeyDatabase, d.Database)
	v.SetDefault(KeySchema, d.Schema)
	v.SetDefault(KeyKeyStrategy, string(d.KeyStrategy))
	v.SetDefault(KeyKeyColumn, "")
	v.SetDefault(KeyFixedTargetKey, d.FixedKey.Target)
	v.SetDefault(KeyFixedSourceKey, d.FixedKey.Source)
	v.SetDefault(KeyComparison, string(d.Comparison))
}

// New returns a configured viper instance.
func New() *viper.Viper {
	v := viper.New()
	Configure(v)
	return v
}

// Options builds generator options from v. Unknown strategy names are
// reported as *generator.ConfigurationError.
func Options(v *viper.Viper) (generator.Options, error) {
	ks, err := generator.ParseKeyStrategy(v.GetString(KeyKeyStrategy))
	if err != nil {
		return generator.Options{}, err
	}
	cmp, err := generator.ParseComparison(v.GetString(KeyComparison))
	if err != nil {
		return generator.Options{}, err
	}

	opts := generator.Options{
		Database:    v.GetString(KeyDatabase),
		Schema:      v.GetString(KeySchema),
		KeyStrategy: ks,
		KeyColumn:   v.GetString(KeyKeyColumn),
		FixedKey: generator.JoinKey{
			Target: v.GetString(KeyFixedTargetKey),
			Source: v.GetString(KeyFixedSourceKey),
		},
		Comparison: cmp,
	}
	// A key column only makes sense with an explicit key.
	if opts.KeyColumn != "" && opts.KeyStrategy == generator.KeyFirstColumn {
		opts.KeyStrategy = generator.KeyExplicit
	}
	return opts, nil
}
