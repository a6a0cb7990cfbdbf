package main

import (
	"flag"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	makeContext := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(&cli.App{}, set, nil)
	}

	for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
		assert.NoError(t, setupLogger(makeContext(level)), "level %q", level)
	}

	err := setupLogger(makeContext("verbose"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestParseDate(t *testing.T) {
	zero, err := parseDate("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	day, err := parseDate("2025-09-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), day)

	stamp, err := parseDate("2025-09-01T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 12, stamp.Hour())

	_, err = parseDate("01/09/2025")
	assert.Error(t, err)
}

func TestSplitCSV(t *testing.T) {
	assert.Nil(t, splitCSV(""))
	assert.Equal(t, []string{"45", "72"}, splitCSV("45,72"))
	assert.Equal(t, []string{"45", "72"}, splitCSV(" 45 , 72 , "))
}

func TestNoticeInput_ToNotice(t *testing.T) {
	input := &noticeInput{
		RecordID:        "TED-2025-000100",
		Title:           "Supply of network routers",
		Buyer:           "City of Rotterdam",
		CPVCodes:        []string{"32420000"},
		PublicationDate: "2025-07-15",
		Budget:          900000,
		Currency:        "EUR",
		Deadline:        "2025-09-01",
	}
	input.Lots = append(input.Lots, struct {
		Number      int     `json:"number"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Budget      float64 `json:"budget"`
	}{Number: 1, Title: "Core routers", Budget: 600000})

	notice, err := input.toNotice()
	require.NoError(t, err)
	assert.Equal(t, "TED-2025-000100", notice.RecordID)
	assert.Equal(t, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), notice.PublicationDate)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), notice.Deadline)
	require.Len(t, notice.Lots, 1)
	assert.Equal(t, "Core routers", notice.Lots[0].Title)

	input.Deadline = "yesterday"
	_, err = input.toNotice()
	assert.Error(t, err)
}
