package series

import (
	"reflect"
	"testing"
	"time"

	"StockCharter/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testSeries() model.Series {
	return model.Series{
		Ticker:   "AAPL",
		HasClose: true,
		Points: []model.PricePoint{
			{Date: day(2023, 1, 1), Close: model.ClosePrice(100)},
			{Date: day(2023, 1, 2), Close: model.ClosePrice(102)},
			{Date: day(2023, 1, 3), Close: nil},
			{Date: day(2023, 1, 4), Close: model.ClosePrice(101)},
		},
	}
}

func TestSlice_InclusiveBounds(t *testing.T) {
	s := testSeries()
	got := Slice(s, model.Window{Start: day(2023, 1, 2), End: day(2023, 1, 3)})
	if len(got.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got.Points))
	}
	if !got.Points[0].Date.Equal(day(2023, 1, 2)) || !got.Points[1].Date.Equal(day(2023, 1, 3)) {
		t.Errorf("wrong points selected: %v", got.Points)
	}
	// Absent closes survive filtering.
	if got.Points[1].Close != nil {
		t.Error("nil close should be preserved by the filter")
	}
}

func TestSlice_StartAfterEnd(t *testing.T) {
	got := Slice(testSeries(), model.Window{Start: day(2023, 1, 4), End: day(2023, 1, 1)})
	if !got.Empty() {
		t.Errorf("start > end should select nothing, got %d points", len(got.Points))
	}
}

func TestSlice_EmptyInput(t *testing.T) {
	got := Slice(model.Series{Ticker: "X"}, model.Window{Start: day(2023, 1, 1), End: day(2023, 1, 31)})
	if !got.Empty() {
		t.Error("empty series in, empty series out")
	}
}

func TestSlice_NoRowsInWindow(t *testing.T) {
	got := Slice(testSeries(), model.Window{Start: day(2024, 1, 1), End: day(2024, 1, 31)})
	if !got.Empty() {
		t.Errorf("expected nothing in window, got %d points", len(got.Points))
	}
}

func TestSlice_Idempotent(t *testing.T) {
	w := model.Window{Start: day(2023, 1, 2), End: day(2023, 1, 4)}
	once := Slice(testSeries(), w)
	twice := Slice(once, w)
	if !reflect.DeepEqual(once.Points, twice.Points) {
		t.Errorf("re-filtering to the same window changed the series: %v vs %v", once.Points, twice.Points)
	}
}

func TestSlice_DoesNotMutateInput(t *testing.T) {
	s := testSeries()
	before := make([]model.PricePoint, len(s.Points))
	copy(before, s.Points)

	got := Slice(s, model.Window{Start: day(2023, 1, 1), End: day(2023, 1, 2)})
	got.Points = append(got.Points, model.PricePoint{Date: day(2023, 2, 1)})

	if !reflect.DeepEqual(before, s.Points) {
		t.Error("input series was mutated by Slice")
	}
}

func TestSlice_KeepsHasClose(t *testing.T) {
	s := testSeries()
	s.HasClose = false
	got := Slice(s, model.Window{Start: day(2023, 1, 1), End: day(2023, 1, 4)})
	if got.HasClose {
		t.Error("HasClose flag should carry through the filter")
	}
}
