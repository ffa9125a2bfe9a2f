package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"evetrade/internal/config"
	"evetrade/internal/engine"
)

// runCommand executes the CLI against a throwaway config dir and returns
// its stdout.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	root := NewRootCmd(config.Default(), zerolog.Nop(), t.TempDir())
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("command %v: %v", args, err)
	}
	return buf.String()
}

func TestRatesCommand(t *testing.T) {
	out := runCommand(t, "rates", "--accounting", "5", "--broker-relations", "5")
	if !strings.Contains(out, "Sales tax:   3.60%") {
		t.Errorf("output missing reduced sales tax:\n%s", out)
	}
	if !strings.Contains(out, "Broker fee:  1.50%") {
		t.Errorf("output missing reduced broker fee:\n%s", out)
	}
}

func TestRatesCommand_JSON(t *testing.T) {
	out := runCommand(t, "rates", "--json")
	var rates engine.EffectiveRates
	if err := json.Unmarshal([]byte(out), &rates); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if rates.SalesTaxRate != engine.BaseSalesTaxRate {
		t.Errorf("SalesTaxRate = %v, want base %v", rates.SalesTaxRate, engine.BaseSalesTaxRate)
	}
}

func TestProfitCommand(t *testing.T) {
	out := runCommand(t, "profit", "--buy", "100", "--sell", "120", "--qty", "10", "--volume", "500")
	if !strings.Contains(out, "Net profit:") {
		t.Errorf("output missing net profit:\n%s", out)
	}
	if !strings.Contains(out, "Rating:") {
		t.Errorf("output missing rating:\n%s", out)
	}
}

func TestProfitCommand_CSVReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")
	runCommand(t, "profit", "--buy", "100", "--sell", "120", "--qty", "10", "--csv", path)

	data := readFile(t, path)
	if !strings.Contains(data, "net_profit") {
		t.Errorf("report missing header:\n%s", data)
	}
}

func TestRiskCommand_ScamWarning(t *testing.T) {
	out := runCommand(t, "risk", "--buy", "1", "--sell", "500", "--volume", "1", "--qty", "1")
	if !strings.Contains(out, "scam") {
		t.Errorf("expected scam warning:\n%s", out)
	}
}

func TestRiskCommand_JSONLevel(t *testing.T) {
	out := runCommand(t, "risk", "--json", "--buy", "1000000", "--sell", "1150000", "--volume", "1", "--qty", "1")
	var a engine.RiskAssessment
	if err := json.Unmarshal([]byte(out), &a); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if a.TotalScore != 35 {
		t.Errorf("TotalScore = %v, want 35", a.TotalScore)
	}
	if a.Level != engine.RiskLevelMedium {
		t.Errorf("Level = %q, want medium", a.Level)
	}
}

func TestRiskCommand_Batch(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "trades.csv")
	csv := "label,buy_price,sell_price,volume,quantity\n" +
		"healthy,1000000,1150000,500,10\n" +
		"bait,1,500,1,1\n"
	if err := os.WriteFile(input, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	out := runCommand(t, "risk", "--batch", input)
	if !strings.Contains(out, "healthy") || !strings.Contains(out, "bait") {
		t.Errorf("batch output missing rows:\n%s", out)
	}
	if !strings.Contains(out, "SCAM?") {
		t.Errorf("bait row not flagged:\n%s", out)
	}
}

func TestRiskCommand_MissingFlags(t *testing.T) {
	r := NewRootCmd(config.Default(), zerolog.Nop(), t.TempDir())
	r.SetOut(&bytes.Buffer{})
	r.SetErr(&bytes.Buffer{})
	r.SetArgs([]string{"risk"})
	if err := r.Execute(); err == nil {
		t.Fatal("expected error without --batch or --buy/--sell")
	}
}

func TestStationCommand(t *testing.T) {
	out := runCommand(t, "station",
		"--orders", "25000", "--daily-volume", "15000000000",
		"--items", "8000", "--avg-spread", "2", "--tax", "0.08", "--broker", "0.03",
		"--buyers", "30", "--sellers", "45")
	if !strings.Contains(out, "Overall: 78.5 / 100  (Very Good)") {
		t.Errorf("unexpected overall:\n%s", out)
	}
}

func TestSimulateCommand(t *testing.T) {
	out := runCommand(t, "simulate",
		"--buy", "1000000", "--sell", "1100000",
		"--market-volume", "50", "--qty", "10",
		"--interval", "30", "--competitors", "10", "--days", "7")
	if !strings.Contains(out, "Total profit:") {
		t.Errorf("output missing summary:\n%s", out)
	}
	if !strings.Contains(out, "Success:") {
		t.Errorf("output missing success probability:\n%s", out)
	}
}

func TestWatchlistLifecycle(t *testing.T) {
	dir := t.TempDir()
	root := func(args ...string) string {
		t.Helper()
		r := NewRootCmd(config.Default(), zerolog.Nop(), dir)
		var buf bytes.Buffer
		r.SetOut(&buf)
		r.SetErr(&buf)
		r.SetArgs(args)
		if err := r.Execute(); err != nil {
			t.Fatalf("command %v: %v", args, err)
		}
		return buf.String()
	}

	out := root("watchlist", "add", "PLEX", "--buy", "4500000", "--sell", "5200000", "--qty", "20", "--volume", "350")
	if !strings.Contains(out, "Added \"PLEX\" as #1") {
		t.Errorf("unexpected add output:\n%s", out)
	}

	out = root("watchlist", "list")
	if !strings.Contains(out, "PLEX") {
		t.Errorf("list missing entry:\n%s", out)
	}

	root("watchlist", "remove", "1")
	out = root("watchlist", "list")
	if !strings.Contains(out, "Watchlist is empty.") {
		t.Errorf("list not empty after remove:\n%s", out)
	}
}

func TestConfigSetPersists(t *testing.T) {
	dir := t.TempDir()

	r := NewRootCmd(config.Default(), zerolog.Nop(), dir)
	r.SetOut(&bytes.Buffer{})
	r.SetArgs([]string{"config", "set", "skills.accounting", "5"})
	if err := r.Execute(); err != nil {
		t.Fatalf("config set: %v", err)
	}

	// A fresh command tree against the same dir sees the stored value.
	r = NewRootCmd(config.Default(), zerolog.Nop(), dir)
	var buf bytes.Buffer
	r.SetOut(&buf)
	r.SetArgs([]string{"config", "show"})
	if err := r.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	persisted := false
	for _, line := range strings.Split(buf.String(), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[0] == "skills.accounting" && fields[1] == "5" {
			persisted = true
		}
	}
	if !persisted {
		t.Errorf("setting did not persist:\n%s", buf.String())
	}
}

func TestConfigSetUnknownKey(t *testing.T) {
	r := NewRootCmd(config.Default(), zerolog.Nop(), t.TempDir())
	r.SetOut(&bytes.Buffer{})
	r.SetErr(&bytes.Buffer{})
	r.SetArgs([]string{"config", "set", "nope", "1"})
	if err := r.Execute(); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestConfigDirFromArgs(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--config", "/tmp/x", "rates"}, "/tmp/x"},
		{[]string{"rates", "--config=/tmp/y"}, "/tmp/y"},
		{[]string{"rates"}, ""},
	}
	for _, tt := range tests {
		if got := configDirFromArgs(tt.args); got != tt.want {
			t.Errorf("configDirFromArgs(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
