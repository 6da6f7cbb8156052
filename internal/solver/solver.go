// Package solver 定义了排班核心所依赖的布尔/整数线性约束求解接口，
// 以及一个默认的深度优先分支定界引擎。
// 核心代码只通过 Model 接口与引擎交互，因此任何满足该契约的
// 约束/优化引擎都可以替换内置实现。
package solver

import (
	"context"
	"math"
	"time"
)

type Status int

const (
	StatusOptimal Status = iota
	StatusFeasible
	StatusInfeasible
	StatusTimeoutNoSolution
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusTimeoutNoSolution:
		return "TIMEOUT_NO_SOLUTION"
	default:
		return "UNKNOWN"
	}
}

// Var 是变量句柄
type Var int

// Term 是线性表达式中的一项
type Term struct {
	Var   Var
	Coeff int64
}

// 单边约束使用的哨兵边界
const (
	NoLower int64 = math.MinInt64
	NoUpper int64 = math.MaxInt64
)

// Model 是约束模型的抽象契约：
//   - NewBoolVar / NewIntVar 创建变量并返回句柄
//   - AddLinear 添加 lo <= Σ coeff*var <= hi 形式的线性约束
//   - AddMaxEquality / AddMinEquality 将一个整数变量绑定为一组变量的最大/最小值
//   - Minimize 设置线性最小化目标
//   - Solve 在给定的时间预算内求解，上下文被取消时按超时中止
//   - Value 读取 OPTIMAL/FEASIBLE 解中某个变量的取值
//
// 内置引擎要求每个整数变量必须由恰好一个等式约束（关于布尔变量）
// 或一个 max/min 等式来定义，这也是核心建模时唯一的用法。
type Model interface {
	NewBoolVar() Var
	NewIntVar(lo, hi int64) Var
	AddLinear(terms []Term, lo, hi int64)
	AddMaxEquality(target Var, vars []Var)
	AddMinEquality(target Var, vars []Var)
	Minimize(terms []Term)
	Solve(ctx context.Context, timeLimit time.Duration) Status
	Value(v Var) int64
}
