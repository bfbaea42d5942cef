// Package config loads praxis settings.
//
// Settings come from three layers, later layers winning: built-in defaults,
// an optional YAML file, then PRAXIS_* variables read from the process
// environment or from a .env file. Process variables take precedence over
// the .env file.
//
//	database:
//	  path: data/praxis
//	ai:
//	  embedding_host: http://localhost:11434/v1
//	  chat_model: qwen2.5:3b
//	retrieval:
//	  k: 5
//	  dense_weight: 0.5
//	  sparse_weight: 0.5
package config
