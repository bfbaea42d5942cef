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


// Package praxis recommends wellness practices from a user's description of
// their symptoms and needs.
//
// A Database opens the badger store and the AI provider once and builds the
// components that share them. A Service runs the full flow:
//
//  1. screening: red flags and context sufficiency (intake)
//  2. analysis: keywords, symptom categories, urgency, embedding (analysis)
//  3. ranking: semantic, symptom and feedback signals (recommend)
//  4. advice: ensemble retrieval over the knowledge base and a written
//     recommendation for the two best practices (advice, retrieval)
//
// Example:
//
//	db, err := praxis.OpenDatabase("data/praxis", praxis.WithAIConfig(cfg))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	svc, err := db.NewService(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	outcome, err := svc.RecommendFromText(ctx, "", "je suis très stressé et je dors mal")
package praxis
