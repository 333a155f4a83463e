package layout

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig 匹配所有配置错误，可配合 errors.Is 使用。
var ErrInvalidConfig = errors.New("图表配置无效")

// ConfigurationError 指出配置中出错的字段。
type ConfigurationError struct {
	Field  string // 例如 "endYear" 或 "sections[0].entries[2].end"
	Value  any
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("配置字段 %s 无效 (%v): %s", e.Field, e.Value, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Is 让 errors.Is(err, ErrInvalidConfig) 对所有配置错误成立。
func (e *ConfigurationError) Is(target error) bool { return target == ErrInvalidConfig }

// NewConfigurationError 构造一个 ConfigurationError。
func NewConfigurationError(field string, value any, reason string, err error) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Reason: reason, Err: err}
}

// Validate 在绘制前检查配置，遇到第一个问题即返回。
func (c Config) Validate() error {
	if c.EndYear <= c.StartYear {
		return NewConfigurationError("endYear", c.EndYear, fmt.Sprintf("必须大于 startYear (%d)", c.StartYear), nil)
	}
	for i, p := range c.TimelinePadding {
		if p < 0 {
			return NewConfigurationError(fmt.Sprintf("timelinePadding[%d]", i), p, "不能为负数", nil)
		}
	}
	full := c.Range()
	for i, s := range c.Sections {
		for j, e := range s.Entries {
			// 开放端点按主轴补齐后再比较
			r := e.resolve(full)
			if !r.End.Before(r.Start) {
				continue
			}
			field := fmt.Sprintf("sections[%d].entries[%d]", i, j)
			if e.End.IsZero() {
				return NewConfigurationError(field+".start", r.Start.Format(isoDate), "晚于主轴结束日期 "+r.End.Format(isoDate), nil)
			}
			return NewConfigurationError(field+".end", r.End.Format(isoDate), "早于开始日期 "+r.Start.Format(isoDate), nil)
		}
	}
	return nil
}
