package layout

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts 是图表文件中允许的日期写法，按精度从高到低尝试。
var dateLayouts = []string{isoDate, "2006-01", "2006"}

const isoDate = "2006-01-02"

// ParseDate 解析 YYYY、YYYY-MM、YYYY-MM-DD；空串、present、now 返回零值（表示开放端点）。
// 所有日期都按 UTC 解释。
func ParseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	switch strings.ToLower(v) {
	case "", "present", "now", "current":
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析日期 %q（支持 YYYY、YYYY-MM、YYYY-MM-DD 或 present）", value)
}

func yearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// resolve 将条目的开放端点补成主轴的起止日期。
func (e Entry) resolve(full DateRange) DateRange {
	r := DateRange{Start: e.Start, End: e.End}
	if r.Start.IsZero() {
		r.Start = full.Start
	}
	if r.End.IsZero() {
		r.End = full.End
	}
	return r
}
