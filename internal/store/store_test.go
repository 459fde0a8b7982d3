package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"StockCharter/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func writeFixture(t *testing.T, dir, ticker, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ticker+".csv"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestCache(t *testing.T) (*CSVCache, string) {
	t.Helper()
	dir := t.TempDir()
	c, err := NewCSVCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	return c, dir
}

func TestLoad_MissingFile(t *testing.T) {
	c, _ := newTestCache(t)
	st := NewStore([]string{"AAPL"}, c)

	s := st.Load("AAPL")
	if !s.Empty() {
		t.Errorf("missing cache file should load as empty series, got %d points", len(s.Points))
	}
	if got := st.Available(); len(got) != 0 {
		t.Errorf("ticker with no cache must not be available, got %v", got)
	}
}

func TestLoad_ParsesAndSorts(t *testing.T) {
	c, dir := newTestCache(t)
	writeFixture(t, dir, "AAPL",
		"Date,Open,High,Low,Close,Volume\n"+
			"2023-01-03,1,1,1,101,10\n"+
			"2023-01-01,1,1,1,100,10\n"+
			"2023-01-02,1,1,1,102,10\n")
	st := NewStore([]string{"AAPL"}, c)

	s := st.Load("AAPL")
	if len(s.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(s.Points))
	}
	for i, want := range []time.Time{day(2023, 1, 1), day(2023, 1, 2), day(2023, 1, 3)} {
		if !s.Points[i].Date.Equal(want) {
			t.Errorf("point %d: expected %v, got %v", i, want, s.Points[i].Date)
		}
	}
	if !s.HasClose {
		t.Error("expected HasClose for a file with a Close column")
	}
}

func TestLoad_DropsUnparsableDates(t *testing.T) {
	c, dir := newTestCache(t)
	writeFixture(t, dir, "AAPL",
		"Date,Close\n"+
			"2023-01-01,100\n"+
			"not-a-date,999\n"+
			"2023-01-02,102\n")
	st := NewStore([]string{"AAPL"}, c)

	s := st.Load("AAPL")
	if len(s.Points) != 2 {
		t.Fatalf("bad-date row should be dropped, got %d points", len(s.Points))
	}
	for _, p := range s.Points {
		if p.Close != nil && *p.Close == 999 {
			t.Error("row with unparsable date leaked into the series")
		}
	}
}

func TestLoad_BadCloseBecomesAbsent(t *testing.T) {
	c, dir := newTestCache(t)
	writeFixture(t, dir, "AAPL",
		"Date,Close\n"+
			"2023-01-01,100\n"+
			"2023-01-02,oops\n"+
			"2023-01-03,inf\n")
	st := NewStore([]string{"AAPL"}, c)

	s := st.Load("AAPL")
	if len(s.Points) != 3 {
		t.Fatalf("rows with bad closes still belong to the series, got %d points", len(s.Points))
	}
	if s.Points[0].Close == nil || *s.Points[0].Close != 100 {
		t.Error("numeric close lost in load")
	}
	if s.Points[1].Close != nil {
		t.Error("non-numeric close should load as absent")
	}
	if s.Points[2].Close != nil {
		t.Error("infinite close should load as absent")
	}
}

func TestLoad_DedupesDates(t *testing.T) {
	c, dir := newTestCache(t)
	writeFixture(t, dir, "AAPL",
		"Date,Close\n"+
			"2023-01-01,100\n"+
			"2023-01-01,200\n")
	st := NewStore([]string{"AAPL"}, c)

	s := st.Load("AAPL")
	if len(s.Points) != 1 {
		t.Fatalf("duplicate dates should collapse to one point, got %d", len(s.Points))
	}
	if *s.Points[0].Close != 100 {
		t.Errorf("first row wins on duplicate dates, got %v", *s.Points[0].Close)
	}
}

func TestLoad_NoCloseColumn(t *testing.T) {
	c, dir := newTestCache(t)
	writeFixture(t, dir, "AAPL",
		"Date,Open\n"+
			"2023-01-01,100\n")
	st := NewStore([]string{"AAPL"}, c)

	s := st.Load("AAPL")
	if s.HasClose {
		t.Error("file without a Close column should report HasClose false")
	}
	if len(s.Points) != 1 || s.Points[0].Close != nil {
		t.Errorf("expected one close-less point, got %+v", s.Points)
	}
}

func TestAvailable_RegistryOrder(t *testing.T) {
	c, dir := newTestCache(t)
	writeFixture(t, dir, "IBM", "Date,Close\n2023-01-01,100\n")
	writeFixture(t, dir, "AAPL", "Date,Close\n2023-01-01,100\n")
	// MSFT configured but not cached.
	st := NewStore([]string{"AAPL", "MSFT", "IBM"}, c)

	got := st.Available()
	if len(got) != 2 || got[0] != "AAPL" || got[1] != "IBM" {
		t.Errorf("expected [AAPL IBM] in registry order, got %v", got)
	}
}

func TestCSVCache_WriteReadRoundtrip(t *testing.T) {
	c, _ := newTestCache(t)
	bars := []model.Bar{
		{Date: day(2023, 1, 1), Open: 99, High: 101, Low: 98, Close: 100, Volume: 1000},
		{Date: day(2023, 1, 2), Open: 100, High: 103, Low: 99, Close: 102, Volume: 1200},
	}
	if err := c.Write("AAPL", bars); err != nil {
		t.Fatal(err)
	}

	st := NewStore([]string{"AAPL"}, c)
	s := st.Load("AAPL")
	if len(s.Points) != 2 {
		t.Fatalf("expected 2 points after roundtrip, got %d", len(s.Points))
	}
	if *s.Points[0].Close != 100 || *s.Points[1].Close != 102 {
		t.Errorf("closes lost in roundtrip: %v %v", s.Points[0].Close, s.Points[1].Close)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2023-01-02", true},
		{"2023-01-02 00:00:00", true},
		{"2023-01-02T00:00:00Z", true},
		{"01/02/2023", false},
		{"", false},
	}
	for _, tt := range tests {
		d, ok := ParseDate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q): ok=%v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && !d.Equal(day(2023, 1, 2)) {
			t.Errorf("ParseDate(%q) = %v, want 2023-01-02", tt.in, d)
		}
	}
}
