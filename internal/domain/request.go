package domain

// SchedulingRequest 是一次排班尝试的完整输入
// 它在每次请求时构造一次并在流水线中显式传递，求解结束后即被丢弃
type SchedulingRequest struct {
	StartDate         string          `json:"startDate" yaml:"startDate" validate:"required"` // 格式为 2006-01-02
	EndDate           string          `json:"endDate" yaml:"endDate" validate:"required"`
	ShiftMode         ShiftMode       `json:"shiftMode" yaml:"shiftMode" validate:"required,oneof=fixed free"`
	FixedShifts       []FixedShiftDef `json:"fixedShifts,omitempty" yaml:"fixedShifts,omitempty"`
	FreeSlots         []FreeSlotDef   `json:"freeSlots,omitempty" yaml:"freeSlots,omitempty"`
	Roles             []Role          `json:"roles" yaml:"roles" validate:"required,min=1"`
	Staffs            []Staff         `json:"staffs" yaml:"staffs" validate:"required,min=1"`
	CoreMembers       []string        `json:"coreMembers,omitempty" yaml:"coreMembers,omitempty"`
	Rules             RuleConfig      `json:"rules" yaml:"rules"`
	CoverageMode      CoverageMode    `json:"coverageMode" yaml:"coverageMode" validate:"required,oneof=strict relaxed"`
	TimeBudgetSeconds int32           `json:"timeBudgetSeconds,omitempty" yaml:"timeBudgetSeconds,omitempty" validate:"omitempty,min=1"`
}
