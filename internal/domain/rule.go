package domain

type RuleName string

const (
	RuleWorkloadBalance RuleName = "workload-balance"
	RuleCoreCoverage    RuleName = "core-coverage"
	RuleDailyHourLimit  RuleName = "daily-hour-limit"
	RuleBreak           RuleName = "break-rule"
)

// RuleConfig 描述启用的排班规则及其数值参数
// 数值参数只有在对应规则启用时才有意义，启用时必须为正数
type RuleConfig struct {
	Enabled               []RuleName `json:"enabled" yaml:"enabled"`
	MaxDailyMinutes       int32      `json:"maxDailyMinutes,omitempty" yaml:"maxDailyMinutes,omitempty"`
	BreakThresholdMinutes int32      `json:"breakThresholdMinutes,omitempty" yaml:"breakThresholdMinutes,omitempty"`
	BreakDurationMinutes  int32      `json:"breakDurationMinutes,omitempty" yaml:"breakDurationMinutes,omitempty"`
}

func (c *RuleConfig) IsEnabled(name RuleName) bool {
	for _, n := range c.Enabled {
		if n == name {
			return true
		}
	}
	return false
}

// CoverageMode 决定覆盖约束的语义：
// strict 要求每个（任务，角色）的排班人数恰好等于需求人数，无法满足时整体无解；
// relaxed 允许人数不足，缺口以 Shortfall 的形式上报而不是导致无解
type CoverageMode string

const (
	CoverageStrict  CoverageMode = "strict"
	CoverageRelaxed CoverageMode = "relaxed"
)
