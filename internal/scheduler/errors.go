package scheduler

import (
	"fmt"
	"time"

	"github.com/Azuma86/scheduler/internal/domain"
)

// ConfigurationError 表示输入在结构上就不合法，
// 在模型构建之前检出，不会到达求解器
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("配置错误（%s）：%s", e.Field, e.Reason)
}

// EligibilityGapError 表示某个（任务，角色）的候选人数不足以满足需求，
// 在 strict 模式下于求解前主动上报，比求解器返回无解更能定位原因
type EligibilityGapError struct {
	TaskID   string
	Role     domain.Role
	Required int32
	Eligible int32
}

func (e *EligibilityGapError) Error() string {
	return fmt.Sprintf("任务 %s 的角色 %s 需要 %d 人，但只有 %d 名符合条件的候选人", e.TaskID, e.Role, e.Required, e.Eligible)
}

// InfeasibleModelError 表示求解器确认不存在满足所有约束的排班方案
// 调用方需要放宽规则或覆盖模式后重新发起整个流水线，核心不做自动放宽
type InfeasibleModelError struct{}

func (e *InfeasibleModelError) Error() string {
	return "不存在满足所有约束的排班方案，请放宽规则或覆盖模式后重试"
}

// TimeoutNoSolutionError 表示求解器在时间预算内没有找到任何可行解
// 对输出而言等同于无解，但模型在更多时间下仍可能有解，因此单独区分
type TimeoutNoSolutionError struct {
	Budget time.Duration
}

func (e *TimeoutNoSolutionError) Error() string {
	return fmt.Sprintf("在 %s 的时间预算内没有找到可行的排班方案", e.Budget)
}
