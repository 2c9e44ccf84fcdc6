package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type HaltDataCmdTestSuite struct {
	suite.Suite
	tempDir string
	data    string
}

func TestHaltDataCmdSuite(t *testing.T) {
	suite.Run(t, new(HaltDataCmdTestSuite))
}

func (suite *HaltDataCmdTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.data = filepath.Join(suite.tempDir, "data")
}

func (suite *HaltDataCmdTestSuite) run(args ...string) (string, error) {
	var out bytes.Buffer

	app := newApp()
	app.Writer = &out

	err := app.Run(context.Background(), append([]string{"haltdata"}, args...))

	return out.String(), err
}

func (suite *HaltDataCmdTestSuite) writeExport(rows ...string) string {
	path := filepath.Join(suite.tempDir, "export.csv")
	content := strings.Join(append([]string{"Halt Date,Halt Time,Symbol,Name,Exchange,Reason,Resume Date,NYSE Resume Time"}, rows...), "\n")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	return path
}

func (suite *HaltDataCmdTestSuite) TestConvertThenReplay() {
	export := suite.writeExport(
		"01/01/2020,10:31:02,ADAP,Adaptimmune,Nasdaq,LULD pause,01/02/2020,14:32:56",
		"01/03/2020,09:00:00,STR WS,Sitio Warrants,NYSE,News pending,01/03/2020,09:30:00",
	)

	_, err := suite.run("convert", "--input", export, "--data", suite.data, "--quiet")
	suite.Require().NoError(err)

	suite.FileExists(filepath.Join(suite.data, "equity", "usa", "halt", "adap.csv"))
	suite.FileExists(filepath.Join(suite.data, "equity", "usa", "halt", "str.ws.csv"))

	out, err := suite.run("replay", "--data", suite.data, "--symbol", "adap", "--start", "2020-01-01", "--end", "2020-01-02")
	suite.Require().NoError(err)

	suite.Equal([]string{
		"2020-01-01 10:31:02 - ADAP - 2020-01-01 10:31:02 - Start - LULDPause",
		"2020-01-01 10:31:02 - ADAP - 2020-01-01 20:00:00 - End - LULDPause",
		"2020-01-02 04:00:00 - ADAP - 2020-01-02 04:00:00 - Start - LULDPause",
		"2020-01-02 04:00:00 - ADAP - 2020-01-02 14:32:56 - End - LULDPause",
	}, strings.Split(strings.TrimSpace(out), "\n"))
}

func (suite *HaltDataCmdTestSuite) TestReplayWithConfig() {
	export := suite.writeExport(
		"01/03/2020,09:00:00,STR WS,Sitio Warrants,NYSE,News pending,01/06/2020,09:30:00",
	)

	_, err := suite.run("convert", "--input", export, "--data", suite.data, "--quiet")
	suite.Require().NoError(err)

	configPath := filepath.Join(suite.tempDir, "config.yaml")
	suite.Require().NoError(os.WriteFile(configPath, []byte("data_folder: "+suite.data+"\npost_market_end: \"16:00\"\n"), 0o644))

	out, err := suite.run("replay", "--config", configPath, "--symbol", "STR.WS", "--start", "2020-01-03", "--end", "2020-01-03")
	suite.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	suite.Require().Len(lines, 2)
	suite.Contains(lines[1], "2020-01-03 16:00:00 - End - NewsPending")
}

func (suite *HaltDataCmdTestSuite) TestReplayMissingSymbolPrintsNothing() {
	out, err := suite.run("replay", "--data", suite.data, "--symbol", "NONE", "--start", "2020-01-01", "--end", "2020-01-31")
	suite.NoError(err)
	suite.Empty(out)
}

func (suite *HaltDataCmdTestSuite) TestConvertMissingInput() {
	_, err := suite.run("convert", "--input", filepath.Join(suite.tempDir, "missing.csv"), "--data", suite.data, "--quiet")
	suite.Error(err)
}

func (suite *HaltDataCmdTestSuite) TestSchema() {
	output := filepath.Join(suite.tempDir, "config")

	_, err := suite.run("schema", "--output", output)
	suite.Require().NoError(err)

	schema, err := os.ReadFile(filepath.Join(output, schemaName))
	suite.Require().NoError(err)
	suite.Contains(string(schema), "trading-halt-source-config")

	samplePath := filepath.Join(output, "trading-halt-source-config.yaml")
	sample, err := os.ReadFile(samplePath)
	suite.Require().NoError(err)
	suite.Contains(string(sample), "# yaml-language-server: $schema="+schemaName)
	suite.Contains(string(sample), "time_zone: America/New_York")

	// A second run keeps the edited sample.
	suite.Require().NoError(os.WriteFile(samplePath, []byte("data_folder: custom\n"), 0o644))
	_, err = suite.run("schema", "--output", output)
	suite.Require().NoError(err)

	sample, err = os.ReadFile(samplePath)
	suite.Require().NoError(err)
	suite.Equal("data_folder: custom\n", string(sample))
}

func (suite *HaltDataCmdTestSuite) TestReplayWindow() {
	loc, err := time.LoadLocation("America/New_York")
	suite.Require().NoError(err)

	start, end := replayWindow(
		time.Date(2021, 9, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 9, 8, 0, 0, 0, 0, time.UTC),
		loc,
	)

	suite.Equal(time.Date(2021, 9, 7, 0, 0, 0, 0, loc), start)
	suite.Equal(time.Date(2021, 9, 8, 23, 59, 59, 999999999, loc), end)
}
