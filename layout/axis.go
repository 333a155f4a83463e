package layout

import "time"

// MapDateToX 把日期线性映射到 [originX, originX+spanWidth] 上的横坐标。
// 区间外的日期会映射到区间外，不做截断；rangeEnd 必须不同于 rangeStart。
func MapDateToX(date, rangeStart, rangeEnd time.Time, originX, spanWidth float64) float64 {
	total := float64(rangeEnd.Unix() - rangeStart.Unix())
	offset := float64(date.Unix() - rangeStart.Unix())
	return originX + spanWidth*offset/total
}
