package domain

type ShiftMode string

const (
	ShiftModeFixed ShiftMode = "fixed"
	ShiftModeFree  ShiftMode = "free"
)

// FixedShiftDef 表示一个固定班次模板，排班期间内每天都会展开成一个任务
type FixedShiftDef struct {
	Name         string         `json:"name" yaml:"name"`
	StartTime    string         `json:"startTime" yaml:"startTime"` // 格式为 15:04
	EndTime      string         `json:"endTime" yaml:"endTime"`
	Requirements map[Role]int32 `json:"requirements" yaml:"requirements"`
}

// FreeSlotDef 表示自由班次模式下的一个营业小时槽位
type FreeSlotDef struct {
	Slot         string         `json:"slot" yaml:"slot"`
	StartTime    string         `json:"startTime" yaml:"startTime"`
	EndTime      string         `json:"endTime" yaml:"endTime"`
	Requirements map[Role]int32 `json:"requirements" yaml:"requirements"`
}

// Task 是一个具体日期上的待排班单元（不变式：StartMinute < EndMinute）
type Task struct {
	ID           string         `json:"id"`
	Date         string         `json:"date"` // 格式为 2006-01-02
	StartMinute  int32          `json:"startMinute"`
	EndMinute    int32          `json:"endMinute"`
	Requirements map[Role]int32 `json:"requirements"`
}

func (t *Task) DurationMinutes() int32 {
	return t.EndMinute - t.StartMinute
}
