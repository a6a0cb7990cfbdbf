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


package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/poiesic/tenderit/ai"
)

// Verdict is the judge's answer for one candidate notice.
type Verdict struct {
	Corresponds bool    `json:"corresponds"`
	Score       float64 `json:"score"`
	Reasoning   string  `json:"reasoning"`
	MissingInfo string  `json:"missing_info"`
}

// IntScore returns the verdict score rounded and clamped to 0..10.
func (v *Verdict) IntScore() int {
	score := int(math.Round(v.Score))
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// judgeCorrespondence asks the model whether the notice detail satisfies the
// request. A malformed reply fails soft: the verdict degrades to
// corresponds=false with score 0 and the session continues.
func judgeCorrespondence(ctx context.Context, model ai.ChatModel, request string, detail map[string]any, logger *slog.Logger) *Verdict {
	detailJSON, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		logger.Warn("failed to encode notice detail for judging", "err", err)
		detailJSON = []byte(fmt.Sprintf("%v", detail))
	}

	messages := []ai.Message{
		ai.SystemMessage(judgeSystemPrompt),
		ai.UserMessage(fmt.Sprintf("Request:\n%s\n\nNotice:\n%s", request, string(detailJSON))),
	}

	reply, err := model.Invoke(ctx, messages)
	if err != nil {
		logger.Error("judge invocation failed", "err", err)
		return &Verdict{Corresponds: false, Score: 0, Reasoning: "judge unavailable"}
	}

	return parseVerdict(reply, logger)
}

// parseVerdict decodes the judge's JSON reply, repairing common formatting
// issues first. Parse failure yields the conservative default verdict.
func parseVerdict(reply string, logger *slog.Logger) *Verdict {
	text := repairJSON(stripFences(reply))

	var verdict Verdict
	if err := json.Unmarshal([]byte(text), &verdict); err != nil {
		logger.Warn("unparsable judge response, degrading to negative verdict",
			"response", text,
			"err", err)
		return &Verdict{Corresponds: false, Score: 0, Reasoning: "unparsable judge response"}
	}

	if verdict.Score < 0 {
		verdict.Score = 0
	}
	if verdict.Score > 10 {
		verdict.Score = 10
	}
	return &verdict
}
