package cli

import (
	"github.com/spf13/viper"

	"github.com/ppiankov/veripack/internal/model"
)

// configFromViper builds the effective configuration from the lower
// layers of the hierarchy: defaults overlaid with whatever the config
// file and VERIPACK_* environment variables set. Flag overrides are
// applied separately, only for flags the user actually passed.
func configFromViper() *model.Config {
	cfg := model.DefaultConfig()

	setInt := func(key string, dst *int) {
		if viper.IsSet(key) {
			*dst = viper.GetInt(key)
		}
	}
	setFloat := func(key string, dst *float64) {
		if viper.IsSet(key) {
			*dst = viper.GetFloat64(key)
		}
	}
	setString := func(key string, dst *string) {
		if viper.IsSet(key) {
			*dst = viper.GetString(key)
		}
	}
	setBool := func(key string, dst *bool) {
		if viper.IsSet(key) {
			*dst = viper.GetBool(key)
		}
	}

	setInt("retrieval.top_k", &cfg.Retrieval.TopK)
	setInt("retrieval.window_size", &cfg.Retrieval.WindowSize)
	setFloat("retrieval.k1", &cfg.Retrieval.K1)
	setFloat("retrieval.b", &cfg.Retrieval.B)

	setFloat("verify.support_threshold", &cfg.Verify.SupportThreshold)
	setFloat("verify.contradiction_threshold", &cfg.Verify.ContradictionThreshold)
	setInt("verify.max_inspect", &cfg.Verify.MaxInspect)
	setString("verify.rules_path", &cfg.Verify.RulesPath)

	setBool("cache.enabled", &cfg.Cache.Enabled)
	setString("cache.dir", &cfg.Cache.Dir)
	if viper.IsSet("cache.ttl") {
		cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	}

	setInt("concurrency.loader_workers", &cfg.Concurrency.LoaderWorkers)
	setBool("verbose", &cfg.Output.Verbose)

	setString("llm.provider", &cfg.LLM.Provider)
	setString("llm.model", &cfg.LLM.Model)
	setString("llm.base_url", &cfg.LLM.BaseURL)
	setInt("llm.timeout_seconds", &cfg.LLM.Timeout)
	setInt("llm.max_tokens", &cfg.LLM.MaxTokens)

	return cfg
}
