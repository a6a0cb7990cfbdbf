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


package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/tenderit"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	archive, err := tenderit.NewArchive("./tender_db")
	if err != nil {
		panic(err)
	}
	defer archive.Close()

	finder, err := archive.NewFinder()
	if err != nil {
		panic(err)
	}

	query := "road resurfacing works"
	if len(os.Args) > 1 {
		query = strings.Join(os.Args[1:], " ")
	}

	ctx := context.Background()
	candidates := finder.FindTop(ctx, query, nil, 5)

	fmt.Printf("Found %d candidates\n", len(candidates))
	for i, candidate := range candidates {
		fmt.Printf("%d: %s (concentration %d)[%0.3f]\n",
			i, candidate.RecordID, candidate.Concentration, candidate.BestScore)
	}
}
