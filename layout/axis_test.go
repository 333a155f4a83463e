package layout

import (
	"math"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestMapDateToXEndpoints(t *testing.T) {
	start, end := date(2000, 1, 1), date(2015, 1, 1)
	if got := MapDateToX(start, start, end, 70, 700); !approx(got, 70) {
		t.Fatalf("区间起点应映射到 originX，实际 %g", got)
	}
	if got := MapDateToX(end, start, end, 70, 700); !approx(got, 770) {
		t.Fatalf("区间终点应映射到 originX+span，实际 %g", got)
	}
}

func TestMapDateToXMonotonic(t *testing.T) {
	start, end := date(2000, 1, 1), date(2015, 1, 1)
	prev := math.Inf(-1)
	for d := start; !d.After(end); d = d.AddDate(0, 3, 0) {
		x := MapDateToX(d, start, end, 0, 1000)
		if x <= prev {
			t.Fatalf("映射在 %s 处不严格递增: %g <= %g", d.Format("2006-01-02"), x, prev)
		}
		prev = x
	}
}

func TestMapDateToXProportional(t *testing.T) {
	start, end := date(2000, 1, 1), date(2015, 1, 1)
	d := date(2010, 2, 7)
	want := 70 + 700*d.Sub(start).Seconds()/end.Sub(start).Seconds()
	if got := MapDateToX(d, start, end, 70, 700); !approx(got, want) {
		t.Fatalf("2010-02-07 映射为 %g，期望 %g", got, want)
	}
}

func TestMapDateToXDoesNotClamp(t *testing.T) {
	start, end := date(2000, 1, 1), date(2010, 1, 1)
	if got := MapDateToX(date(1995, 1, 1), start, end, 100, 500); got >= 100 {
		t.Fatalf("区间之前的日期应落在起点左侧，实际 %g", got)
	}
	if got := MapDateToX(date(2020, 1, 1), start, end, 100, 500); got <= 600 {
		t.Fatalf("区间之后的日期应落在终点右侧，实际 %g", got)
	}
}
