package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"metprep/internal/config"
	"metprep/internal/logger"
	"metprep/internal/projector"
	"metprep/internal/table"
)

const metHeader = "Object Number,Is Highlight,Department,AccessionYear,Object ID,Object Name,Title,Culture\n"

func setup(t *testing.T, csv string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Projector.Input = filepath.Join(dir, "MetObjects.csv")
	cfg.Projector.Output = filepath.Join(dir, "MetObjects_clean.csv")

	if err := os.WriteFile(cfg.Projector.Input, []byte(csv), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	return cfg
}

func quietLogger() *logger.Logger {
	return logger.NewLogger("error", "text", io.Discard)
}

func TestRun_ProjectsDefaultColumns(t *testing.T) {
	csv := "\ufeff" + metHeader +
		"1979.486.1,False,The American Wing,1979,1,Coin,One-dollar Liberty Head Coin,\n" +
		"1980.264.5,True,The American Wing,1980,2,Coin,\"Ten-dollar Coin, Liberty\",American\n"

	cfg := setup(t, csv)

	var stdout bytes.Buffer
	if err := run(cfg, quietLogger(), &stdout); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got, err := os.ReadFile(cfg.Projector.Output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	want := "AccessionYear,Object Name,Object ID,Title,Is Highlight,Department\n" +
		"1979,Coin,1,One-dollar Liberty Head Coin,False,The American Wing\n" +
		"1980,Coin,2,\"Ten-dollar Coin, Liberty\",True,The American Wing\n"
	if string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	wantLine := "Wrote 2 rows with 6 columns to " + cfg.Projector.Output + "\n"
	if stdout.String() != wantLine {
		t.Errorf("stdout = %q, want %q", stdout.String(), wantLine)
	}
}

func TestRun_HeaderOnly(t *testing.T) {
	cfg := setup(t, metHeader)

	if err := run(cfg, quietLogger(), io.Discard); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got, _ := os.ReadFile(cfg.Projector.Output)
	if string(got) != "AccessionYear,Object Name,Object ID,Title,Is Highlight,Department\n" {
		t.Errorf("output = %q, want header only", got)
	}
}

func TestRun_CustomColumns(t *testing.T) {
	cfg := setup(t, metHeader+"a,False,Arms,1990,9,Sword,Blade,Japanese\n")
	cfg.Projector.Columns = []string{"Culture", "Object ID"}

	var stdout bytes.Buffer
	if err := run(cfg, quietLogger(), &stdout); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got, _ := os.ReadFile(cfg.Projector.Output)
	if string(got) != "Culture,Object ID\nJapanese,9\n" {
		t.Errorf("output = %q", got)
	}

	if !strings.Contains(stdout.String(), "with 2 columns") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRun_MissingColumnLeavesOutputUntouched(t *testing.T) {
	cfg := setup(t, "Object ID,Title\n1,Coin\n")

	if err := os.WriteFile(cfg.Projector.Output, []byte("previous"), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer

	err := run(cfg, quietLogger(), &stdout)
	if !errors.Is(err, projector.ErrMissingColumn) {
		t.Fatalf("run error = %v, want ErrMissingColumn", err)
	}

	if !strings.Contains(err.Error(), `"AccessionYear"`) {
		t.Errorf("error %q does not name the missing column", err)
	}

	got, _ := os.ReadFile(cfg.Projector.Output)
	if string(got) != "previous" {
		t.Errorf("output was modified: %q", got)
	}

	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing on failure", stdout.String())
	}
}

func TestRun_RaggedRow(t *testing.T) {
	cfg := setup(t, metHeader+"a,False,Arms,1990,9,Sword,Blade,Japanese,extra\n")

	err := run(cfg, quietLogger(), io.Discard)
	if !errors.Is(err, table.ErrRaggedRow) {
		t.Fatalf("run error = %v, want ErrRaggedRow", err)
	}

	if _, statErr := os.Stat(cfg.Projector.Output); !os.IsNotExist(statErr) {
		t.Error("output file created on failed run")
	}
}

func TestRun_MissingInput(t *testing.T) {
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Projector.Input = filepath.Join(dir, "absent.csv")
	cfg.Projector.Output = filepath.Join(dir, "out.csv")

	err := run(cfg, quietLogger(), io.Discard)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("run error = %v, want os.ErrNotExist", err)
	}
}

func TestRun_DebugLogsConfiguration(t *testing.T) {
	cfg := setup(t, metHeader)

	var logs bytes.Buffer
	if err := run(cfg, logger.NewLogger("debug", "text", &logs), io.Discard); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !strings.Contains(logs.String(), "loaded configuration") || !strings.Contains(logs.String(), "(6 columns)") {
		t.Errorf("debug log missing configuration entry: %q", logs.String())
	}
}

func TestRun_KeepsCRLFInsideTitles(t *testing.T) {
	cfg := setup(t, strings.ReplaceAll(metHeader, "\n", "\r\n")+
		"a,False,Arms,1990,9,Sword,\"Blade\r\nand scabbard\",Japanese\r\n")

	if err := run(cfg, quietLogger(), io.Discard); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got, _ := os.ReadFile(cfg.Projector.Output)

	want := "AccessionYear,Object Name,Object ID,Title,Is Highlight,Department\n" +
		"1990,Sword,9,\"Blade\r\nand scabbard\",False,Arms\n"
	if string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
