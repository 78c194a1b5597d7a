package feed

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseTradeReport(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    TradeReport
		wantErr error
		anyErr  bool
	}{
		{
			name: "string amounts",
			data: `{"type":"trade","msg":{"stock":"TEA","side":"buy","quantity":"100","price":"99.5"}}`,
			want: TradeReport{Stock: "TEA", Side: "buy", Quantity: decimal.NewFromInt(100), Price: decimal.RequireFromString("99.5")},
		},
		{
			name: "number amounts",
			data: `{"type":"trade","msg":{"stock":"POP","side":"SELL","quantity":200,"price":100}}`,
			want: TradeReport{Stock: "POP", Side: "SELL", Quantity: decimal.NewFromInt(200), Price: decimal.NewFromInt(100)},
		},
		{
			name:    "other type",
			data:    `{"type":"subscribed","msg":{}}`,
			wantErr: ErrUnknownType,
		},
		{
			name:   "bad json",
			data:   `{"type":`,
			anyErr: true,
		},
		{
			name:   "bad amount",
			data:   `{"type":"trade","msg":{"stock":"TEA","side":"buy","quantity":"lots","price":"1"}}`,
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTradeReport([]byte(tt.data))
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
				return
			case tt.anyErr:
				if err == nil {
					t.Error("expected error")
				}
				return
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}

			if got.Stock != tt.want.Stock || got.Side != tt.want.Side {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if !got.Quantity.Equal(tt.want.Quantity) {
				t.Errorf("Quantity = %s, want %s", got.Quantity, tt.want.Quantity)
			}
			if !got.Price.Equal(tt.want.Price) {
				t.Errorf("Price = %s, want %s", got.Price, tt.want.Price)
			}
		})
	}
}

func TestParseTrade_Envelope(t *testing.T) {
	env := Envelope{Type: TypeTrade, Msg: []byte(`{"stock":"GIN","side":"sell","quantity":"5","price":"10.5"}`)}

	report, err := parseTrade(env)
	if err != nil {
		t.Fatalf("parseTrade failed: %v", err)
	}
	if report.Stock != "GIN" || report.Side != "sell" {
		t.Errorf("report = %+v", report)
	}
	if !report.Price.Equal(decimal.RequireFromString("10.5")) {
		t.Errorf("Price = %s, want 10.5", report.Price)
	}

	if _, err := parseTrade(Envelope{Type: TypeSubscribed}); !errors.Is(err, ErrUnknownType) {
		t.Errorf("err = %v, want ErrUnknownType", err)
	}
}
