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


package intake

import (
	"strings"

	"github.com/poiesic/praxis/fuzzy"
)

// RedFlags are the phrases that mark a description as an emergency.
var RedFlags = []string{
	"douleur thoracique", "douleur poitrine", "pression poitrine", "serrement poitrine",
	"difficulté à respirer", "souffle court", "étouffement",
	"perte de conscience", "évanouissement",
	"confusion soudaine", "difficulté à parler",
	"engourdissement visage", "engourdissement bras", "engourdissement jambe",
	"saignement incontrôlable", "hémorragie",
	"pensées suicidaires", "faire du mal",
}

// DetectRedFlag returns the first red flag found in text. A flag is found
// when the lowercased text contains it or fuzzy-matches it, so misspelled
// flags are caught too.
func DetectRedFlag(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, flag := range RedFlags {
		if strings.Contains(lowered, flag) || fuzzy.Matches(lowered, flag) {
			return flag, true
		}
	}
	return "", false
}
