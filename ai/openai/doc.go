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


// Package openai implements ai.AIProvider with langchaingo against any
// OpenAI-compatible server: OpenAI itself, Ollama, LocalAI or vLLM.
//
// Three services share one ai.Config:
//
//   - Embedder sends texts to the embeddings endpoint of EmbeddingHost.
//   - ContextAnalyzer asks the chat model, in JSON mode, whether a symptom
//     description is precise enough and whether it needs an emergency
//     answer. Malformed answers are repaired when possible and retried up
//     to three times.
//   - AdviceWriter fills a French markdown template with the knowledge base
//     passages retrieved for the two best practices.
//
// Example:
//
//	config := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithChatModel("qwen2.5:3b"),
//	)
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	assessment, err := provider.ContextAnalyzer().AssessContext(ctx, "je dors mal depuis un mois")
package openai
