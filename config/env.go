package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Prefix is prepended to every environment variable name.
const Prefix = "PRAXIS_"

// LookupFunc returns the value of an environment variable.
type LookupFunc func(key string) (string, bool)

// envLookup layers the process environment over the variables of envFile.
func envLookup(envFile string) (LookupFunc, error) {
	path := envFile
	if path == "" {
		path = DefaultEnvFile
	}
	found, err := fileExists(path)
	if err != nil {
		return nil, err
	}
	if !found {
		if envFile != "" {
			return nil, fmt.Errorf("%w: %s", ErrEnvFileNotFound, envFile)
		}
		return os.LookupEnv, nil
	}

	dotenv, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSettings, path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// applyEnv overrides settings with PRAXIS_* variables.
func (s *Settings) applyEnv(lookup LookupFunc) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"DB_PATH", &s.Database.Path},
		{"EMBEDDING_HOST", &s.AI.EmbeddingHost},
		{"CHAT_HOST", &s.AI.ChatHost},
		{"EMBEDDING_MODEL", &s.AI.EmbeddingModel},
		{"CHAT_MODEL", &s.AI.ChatModel},
		{"API_KEY", &s.AI.APIKey},
	}
	for _, e := range strs {
		if v, ok := lookup(Prefix + e.key); ok && v != "" {
			*e.dst = v
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"TOP_N", &s.Recommend.TopN},
		{"RETRIEVAL_K", &s.Retrieval.K},
		{"EMBED_BURST", &s.Retrieval.EmbedBurst},
	}
	for _, e := range ints {
		v, ok := lookup(Prefix + e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q", ErrInvalidSettings, Prefix, e.key, v)
		}
		*e.dst = n
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"ANALYSIS_TEMPERATURE", &s.AI.AnalysisTemperature},
		{"ADVICE_TEMPERATURE", &s.AI.AdviceTemperature},
		{"DENSE_WEIGHT", &s.Retrieval.DenseWeight},
		{"SPARSE_WEIGHT", &s.Retrieval.SparseWeight},
		{"EMBED_RATE", &s.Retrieval.EmbedRate},
		{"SCREENING_THRESHOLD", &s.Screening.Threshold},
	}
	for _, e := range floats {
		v, ok := lookup(Prefix + e.key)
		if !ok || v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q", ErrInvalidSettings, Prefix, e.key, v)
		}
		*e.dst = f
	}

	if v, ok := lookup(Prefix + "CATALOG_CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sCATALOG_CACHE_TTL=%q", ErrInvalidSettings, Prefix, v)
		}
		s.Recommend.CatalogCacheTTL = d
	}
	if v, ok := lookup(Prefix + "TESTING"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sTESTING=%q", ErrInvalidSettings, Prefix, v)
		}
		s.Testing = b
	}
	return nil
}
