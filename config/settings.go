// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/poiesic/praxis/ai"
	"gopkg.in/yaml.v3"
)

// DefaultEnvFile is read when no .env file is named explicitly.
const DefaultEnvFile = ".env"

// Settings holds the configuration of a praxis installation.
type Settings struct {
	Database  DatabaseSettings  `yaml:"database"`
	AI        AISettings        `yaml:"ai"`
	Recommend RecommendSettings `yaml:"recommend"`
	Retrieval RetrievalSettings `yaml:"retrieval"`
	Screening ScreeningSettings `yaml:"screening"`

	// Testing switches to a separate database, see DatabasePath.
	Testing bool `yaml:"testing"`
}

// DatabaseSettings locates the badger database.
type DatabaseSettings struct {
	Path string `yaml:"path"`
}

// AISettings configures the OpenAI-compatible endpoints.
type AISettings struct {
	EmbeddingHost       string  `yaml:"embedding_host"`
	ChatHost            string  `yaml:"chat_host"`
	EmbeddingModel      string  `yaml:"embedding_model"`
	ChatModel           string  `yaml:"chat_model"`
	APIKey              string  `yaml:"api_key"`
	AnalysisTemperature float64 `yaml:"analysis_temperature"`
	AdviceTemperature   float64 `yaml:"advice_temperature"`
}

// RecommendSettings tunes the recommender.
type RecommendSettings struct {
	TopN            int           `yaml:"top_n"`
	CatalogCacheTTL time.Duration `yaml:"catalog_cache_ttl"` // 0 disables the cache
}

// RetrievalSettings tunes the ensemble retriever.
type RetrievalSettings struct {
	K            int     `yaml:"k"`
	DenseWeight  float64 `yaml:"dense_weight"`
	SparseWeight float64 `yaml:"sparse_weight"`
	// EmbedRate limits query embeddings per second. 0 means unlimited.
	EmbedRate  float64 `yaml:"embed_rate"`
	EmbedBurst int     `yaml:"embed_burst"`
}

// ScreeningSettings tunes input screening.
type ScreeningSettings struct {
	Threshold float64 `yaml:"threshold"`
}

// Default returns the settings used when nothing is configured.
func Default() *Settings {
	aiDefaults := ai.DefaultConfig()
	return &Settings{
		Database: DatabaseSettings{Path: "data/praxis"},
		AI: AISettings{
			EmbeddingHost:       aiDefaults.EmbeddingHost,
			ChatHost:            aiDefaults.ChatHost,
			EmbeddingModel:      aiDefaults.EmbeddingModel,
			ChatModel:           aiDefaults.ChatModel,
			APIKey:              aiDefaults.APIKey,
			AnalysisTemperature: aiDefaults.AnalysisTemperature,
			AdviceTemperature:   aiDefaults.AdviceTemperature,
		},
		Recommend: RecommendSettings{TopN: 3},
		Retrieval: RetrievalSettings{
			K:            5,
			DenseWeight:  0.5,
			SparseWeight: 0.5,
			EmbedBurst:   1,
		},
		Screening: ScreeningSettings{Threshold: 0.4},
	}
}

// Load builds settings from the YAML file at path (skipped when empty),
// the .env file envFile and the process environment. An empty envFile
// means DefaultEnvFile, which may be absent.
func Load(path, envFile string) (*Settings, error) {
	s := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading settings file: %w", err)
		}
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSettings, path, err)
		}
	}

	lookup, err := envLookup(envFile)
	if err != nil {
		return nil, err
	}
	if err := s.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// DatabasePath returns the database directory. In testing mode the path
// gets a _test suffix so tests never touch real data.
func (s *Settings) DatabasePath() string {
	if s.Testing {
		return s.Database.Path + "_test"
	}
	return s.Database.Path
}

// AIConfig converts the AI settings into a normalized ai.Config.
func (s *Settings) AIConfig() *ai.Config {
	cfg := ai.NewConfig(
		ai.WithEmbeddingHost(s.AI.EmbeddingHost),
		ai.WithChatHost(s.AI.ChatHost),
		ai.WithEmbeddingModel(s.AI.EmbeddingModel),
		ai.WithChatModel(s.AI.ChatModel),
		ai.WithAPIKey(s.AI.APIKey),
		ai.WithTemperatures(s.AI.AnalysisTemperature, s.AI.AdviceTemperature),
	)
	cfg.Normalize()
	return cfg
}

// Validate checks value ranges. The AI endpoints are validated by
// ai.Config when the provider is created.
func (s *Settings) Validate() error {
	var errs []error
	if s.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if s.Recommend.TopN < 1 {
		errs = append(errs, fmt.Errorf("recommend.top_n must be positive, got %d", s.Recommend.TopN))
	}
	if s.Recommend.CatalogCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("recommend.catalog_cache_ttl must not be negative, got %s", s.Recommend.CatalogCacheTTL))
	}
	if s.Retrieval.K < 1 {
		errs = append(errs, fmt.Errorf("retrieval.k must be positive, got %d", s.Retrieval.K))
	}
	if s.Retrieval.DenseWeight < 0 || s.Retrieval.SparseWeight < 0 {
		errs = append(errs, errors.New("retrieval weights must not be negative"))
	}
	if s.Retrieval.EmbedRate < 0 {
		errs = append(errs, fmt.Errorf("retrieval.embed_rate must not be negative, got %g", s.Retrieval.EmbedRate))
	}
	if s.Retrieval.EmbedRate > 0 && s.Retrieval.EmbedBurst < 1 {
		errs = append(errs, fmt.Errorf("retrieval.embed_burst must be positive, got %d", s.Retrieval.EmbedBurst))
	}
	if s.Screening.Threshold < 0 || s.Screening.Threshold > 1 {
		errs = append(errs, fmt.Errorf("screening.threshold must be between 0 and 1, got %g", s.Screening.Threshold))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
	}
	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
