package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/rickgao/gbce-market/internal/clock"
)

func TestRunDemo(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := runDemo(&buf, clock.NewManual(1_523_567_551_269_963), logger); err != nil {
		t.Fatalf("runDemo failed: %v", err)
	}
	out := buf.String()

	want := []string{
		"stock(name=GIN, last_dividend=8, par=100, fixed_dividend=0.02)",
		"stock(name=TEA, last_dividend=0, par=100, fixed_dividend=none)",
		"dividend yield for TEA at 10 pence: 0\n",
		"dividend yield for POP at 10 pence: 0.8\n",
		"dividend yield for GIN at 10 pence: 0.2\n",
		"P/E ratio for TEA at 10 pence: none\n",
		"P/E ratio for POP at 10 pence: 1.25\n",
		"P/E ratio for GIN at 10 pence: 5\n",
		"trade(id=0, stock=TEA, side=BUY, quantity=100, price=99, timestamp=1523567551269963)",
		"trade(id=2, stock=POP, side=BUY, quantity=200, price=100, timestamp=1523567551271963)",
		"GIN trades:\nVWSP for TEA",
		"VWSP for TEA: 100.5\n",
		"VWSP for POP: 100\n",
		"VWSP for GIN: none\n",
		"GBCE ASI: 100.249688278817",
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("demo output missing %q\noutput:\n%s", w, out)
		}
	}

	// Stocks are listed by name.
	gin := strings.Index(out, "stock(name=GIN")
	pop := strings.Index(out, "stock(name=POP")
	tea := strings.Index(out, "stock(name=TEA")
	if !(gin < pop && pop < tea) {
		t.Errorf("stocks not sorted by name: GIN@%d POP@%d TEA@%d", gin, pop, tea)
	}
}

func TestRunDemo_ReportHasNoLogLines(t *testing.T) {
	var out, logs bytes.Buffer

	if err := runDemo(&out, clock.NewManual(1_523_567_551_269_963), demoLogger(&logs)); err != nil {
		t.Fatalf("runDemo failed: %v", err)
	}

	if strings.Contains(out.String(), "level=") {
		t.Errorf("demo report contains log lines:\n%s", out.String())
	}
	if logs.Len() != 0 {
		t.Errorf("demo logged below warn level:\n%s", logs.String())
	}
}
