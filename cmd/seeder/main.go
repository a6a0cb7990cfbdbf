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


// Seeder populates a local archive with a handful of sample procurement
// notices. Useful for trying out the search and ask commands against a
// running embedding service.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/poiesic/tenderit"
	"github.com/poiesic/tenderit/core"
)

var dbPath = flag.String("db", "./tender_db", "path to the archive directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

var notices = []*core.Notice{
	{
		RecordID:        "TED-2025-000201",
		Title:           "Supply of network routers and switches",
		Description:     "Delivery, installation and configuration of core and edge routers for two municipal data centers, including three years of maintenance and firmware support.",
		Buyer:           "City of Rotterdam",
		CPVCodes:        []string{"32420000", "32413100"},
		NUTSRegions:     []string{"NL33C"},
		PublicationDate: day(2025, 6, 12),
		Budget:          900000,
		Currency:        "EUR",
		Deadline:        day(2025, 9, 1),
		ContractType:    "supplies",
		ProcedureType:   "open",
		AwardCriteria: []core.AwardCriterion{
			{Name: "Price", Weight: 60, Kind: "price"},
			{Name: "Technical quality", Weight: 40, Kind: "quality"},
		},
	},
	{
		RecordID:        "TED-2025-000202",
		Title:           "Road resurfacing works, provincial network",
		Description:     "Asphalt resurfacing of approximately 42 kilometres of regional roads, including drainage repairs, road markings and temporary traffic management.",
		Buyer:           "Province of Utrecht",
		CPVCodes:        []string{"45233220", "45233221"},
		NUTSRegions:     []string{"NL31"},
		PublicationDate: day(2025, 5, 28),
		Budget:          2500000,
		Currency:        "EUR",
		Deadline:        day(2025, 8, 15),
		ContractType:    "works",
		ProcedureType:   "open",
		Lots: []core.Lot{
			{Number: 1, Title: "Northern section", Description: "Resurfacing of 18 km north of Amersfoort.", Budget: 1100000},
			{Number: 2, Title: "Southern section", Description: "Resurfacing of 24 km between Utrecht and Vianen.", Budget: 1400000},
		},
	},
	{
		RecordID:        "TED-2025-000203",
		Title:           "School catering services",
		Description:     "Daily preparation and delivery of warm lunches for twelve primary schools, with organic and vegetarian options required.",
		Buyer:           "Municipality of Groningen",
		CPVCodes:        []string{"55523100"},
		NUTSRegions:     []string{"NL11"},
		PublicationDate: day(2025, 6, 2),
		Budget:          780000,
		Currency:        "EUR",
		Deadline:        day(2025, 8, 30),
		ContractType:    "services",
		ProcedureType:   "restricted",
		Eligibility:     "Caterers must hold HACCP certification and demonstrate experience with institutional catering of at least 500 meals per day.",
	},
	{
		RecordID:        "TED-2025-000204",
		Title:           "Hospital imaging equipment",
		Description:     "Procurement of two MRI scanners and one CT scanner for the radiology department, including installation, staff training and a seven year service contract.",
		Buyer:           "University Medical Center Leiden",
		CPVCodes:        []string{"33111000", "33115000"},
		NUTSRegions:     []string{"NL33"},
		PublicationDate: day(2025, 4, 18),
		Budget:          6400000,
		Currency:        "EUR",
		Deadline:        day(2025, 7, 21),
		ContractType:    "supplies",
		ProcedureType:   "competitive dialogue",
	},
	{
		RecordID:        "TED-2025-000205",
		Title:           "IT service desk outsourcing",
		Description:     "Provision of a multilingual first and second line IT service desk for approximately 3500 workstations, available on weekdays from 07:00 to 19:00.",
		Buyer:           "Ministry of Infrastructure",
		CPVCodes:        []string{"72253000"},
		NUTSRegions:     []string{"NL32"},
		PublicationDate: day(2025, 6, 20),
		Budget:          1900000,
		Currency:        "EUR",
		Deadline:        day(2025, 9, 12),
		ContractType:    "services",
		ProcedureType:   "open",
	},
	{
		RecordID:        "TED-2025-000206",
		Title:           "Bridge renovation, Willemsbrug approach",
		Description:     "Structural renovation of the eastern approach ramp, including concrete repairs, bearing replacement and repainting of the steel superstructure.",
		Buyer:           "City of Rotterdam",
		CPVCodes:        []string{"45221119"},
		NUTSRegions:     []string{"NL33C"},
		PublicationDate: day(2025, 5, 5),
		Budget:          3800000,
		Currency:        "EUR",
		Deadline:        day(2025, 8, 1),
		ContractType:    "works",
		ProcedureType:   "restricted",
	},
}

func main() {
	archive, err := tenderit.NewArchive(*dbPath)
	if err != nil {
		panic(err)
	}
	defer archive.Close()

	pipeline, err := archive.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	added, err := pipeline.IndexSync(ctx, notices...)
	if err != nil {
		panic(err)
	}

	slog.Info("seeding complete", "notices", len(added), "db", *dbPath)
}
