package solver

import (
	"context"
	"time"
)

// 内置的深度优先分支定界引擎
// 针对的是原问题的规模（数十个任务 × 数十名员工的稀疏变量空间），
// 布尔变量上做带剪枝的枚举，整数变量由定义式在叶子处推导求值
type model struct {
	vars []varInfo
	cons []linearCon
	aggs []aggDef

	objective    []Term
	hasObjective bool

	// 以下字段为一次 Solve 的内部状态
	boolVars []Var
	intDefs  []intDef
	occ      [][]occurrence
	cur      []int64
	fixed    []int64
	posLeft  []int64
	negLeft  []int64
	nodes    int64

	best     []int64
	bestObj  int64
	found    bool
	complete bool
}

type varInfo struct {
	lo, hi int64
	isBool bool
}

type linearCon struct {
	terms    []Term
	lo, hi   int64
	pureBool bool
}

type aggDef struct {
	target Var
	vars   []Var
	isMax  bool
}

// intDef 表示一个整数变量的定义式：coeff*v + Σ boolTerms == rhs
type intDef struct {
	target Var
	coeff  int64
	terms  []Term
	rhs    int64
}

type occurrence struct {
	con   int
	coeff int64
}

func NewModel() Model {
	return &model{}
}

func (m *model) NewBoolVar() Var {
	m.vars = append(m.vars, varInfo{lo: 0, hi: 1, isBool: true})
	return Var(len(m.vars) - 1)
}

func (m *model) NewIntVar(lo, hi int64) Var {
	m.vars = append(m.vars, varInfo{lo: lo, hi: hi})
	return Var(len(m.vars) - 1)
}

func (m *model) AddLinear(terms []Term, lo, hi int64) {
	pure := true
	for _, t := range terms {
		if !m.vars[t.Var].isBool {
			pure = false
			break
		}
	}
	m.cons = append(m.cons, linearCon{terms: terms, lo: lo, hi: hi, pureBool: pure})
}

func (m *model) AddMaxEquality(target Var, vars []Var) {
	m.aggs = append(m.aggs, aggDef{target: target, vars: vars, isMax: true})
}

func (m *model) AddMinEquality(target Var, vars []Var) {
	m.aggs = append(m.aggs, aggDef{target: target, vars: vars, isMax: false})
}

func (m *model) Minimize(terms []Term) {
	m.objective = terms
	m.hasObjective = true
}

func (m *model) Value(v Var) int64 {
	return m.best[v]
}

func (m *model) Solve(ctx context.Context, timeLimit time.Duration) Status {
	m.prepare()

	deadline := time.Now().Add(timeLimit)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	timedOut := m.search(ctx, 0, deadline)

	switch {
	case m.found && !timedOut:
		return StatusOptimal
	case m.found:
		return StatusFeasible
	case timedOut:
		return StatusTimeoutNoSolution
	default:
		return StatusInfeasible
	}
}

func (m *model) prepare() {
	m.boolVars = m.boolVars[:0]
	for i, info := range m.vars {
		if info.isBool {
			m.boolVars = append(m.boolVars, Var(i))
		}
	}

	// 识别整数变量的定义式：等式约束中恰好含有一个整数变量项
	defined := make(map[Var]bool)
	m.intDefs = m.intDefs[:0]
	for _, c := range m.cons {
		if c.lo != c.hi || c.pureBool {
			continue
		}
		var target *Term
		ok := true
		for i, t := range c.terms {
			if m.vars[t.Var].isBool {
				continue
			}
			if target != nil {
				ok = false
				break
			}
			target = &c.terms[i]
		}
		if !ok || target == nil || target.Coeff == 0 || defined[target.Var] {
			continue
		}
		def := intDef{target: target.Var, coeff: target.Coeff, rhs: c.lo}
		for _, t := range c.terms {
			if t.Var != target.Var {
				def.terms = append(def.terms, t)
			}
		}
		defined[target.Var] = true
		m.intDefs = append(m.intDefs, def)
	}

	// 只对纯布尔约束做增量剪枝，含整数变量的约束在叶子处整体检查
	m.occ = make([][]occurrence, len(m.vars))
	m.fixed = make([]int64, len(m.cons))
	m.posLeft = make([]int64, len(m.cons))
	m.negLeft = make([]int64, len(m.cons))
	for ci, c := range m.cons {
		if !c.pureBool {
			continue
		}
		for _, t := range c.terms {
			m.occ[t.Var] = append(m.occ[t.Var], occurrence{con: ci, coeff: t.Coeff})
			if t.Coeff > 0 {
				m.posLeft[ci] += t.Coeff
			} else {
				m.negLeft[ci] += t.Coeff
			}
		}
	}

	m.cur = make([]int64, len(m.vars))
	m.nodes = 0
	m.best = nil
	m.bestObj = 0
	m.found = false
	m.complete = false
}

// search 返回是否因超出时间预算或上下文被取消而中止
func (m *model) search(ctx context.Context, i int, deadline time.Time) bool {
	m.nodes++
	if m.nodes&255 == 1 && (ctx.Err() != nil || time.Now().After(deadline)) {
		return true
	}

	if i == len(m.boolVars) {
		m.evalLeaf()
		return false
	}

	v := m.boolVars[i]
	for _, val := range [2]int64{1, 0} {
		if m.push(v, val) {
			if m.search(ctx, i+1, deadline) {
				m.pop(v, val)
				return true
			}
		}
		m.pop(v, val)
		if m.complete {
			return false
		}
	}
	return false
}

// push 固定一个布尔变量的取值并检查纯布尔约束是否仍可满足
func (m *model) push(v Var, val int64) bool {
	m.cur[v] = val
	ok := true
	for _, o := range m.occ[v] {
		m.fixed[o.con] += o.coeff * val
		if o.coeff > 0 {
			m.posLeft[o.con] -= o.coeff
		} else {
			m.negLeft[o.con] -= o.coeff
		}
		c := &m.cons[o.con]
		if m.fixed[o.con]+m.negLeft[o.con] > c.hi || m.fixed[o.con]+m.posLeft[o.con] < c.lo {
			ok = false
		}
	}
	return ok
}

func (m *model) pop(v Var, val int64) {
	for _, o := range m.occ[v] {
		m.fixed[o.con] -= o.coeff * val
		if o.coeff > 0 {
			m.posLeft[o.con] += o.coeff
		} else {
			m.negLeft[o.con] += o.coeff
		}
	}
	m.cur[v] = 0
}

func (m *model) evalLeaf() {
	vals := make([]int64, len(m.vars))
	copy(vals, m.cur)
	for i, info := range m.vars {
		if !info.isBool {
			vals[i] = info.lo
		}
	}

	// 先按定义式推导整数变量，再计算 max/min 聚合
	for _, def := range m.intDefs {
		sum := int64(0)
		for _, t := range def.terms {
			sum += t.Coeff * vals[t.Var]
		}
		rest := def.rhs - sum
		if rest%def.coeff != 0 {
			return
		}
		vals[def.target] = rest / def.coeff
	}
	for _, agg := range m.aggs {
		if len(agg.vars) == 0 {
			continue
		}
		acc := vals[agg.vars[0]]
		for _, v := range agg.vars[1:] {
			if agg.isMax && vals[v] > acc {
				acc = vals[v]
			}
			if !agg.isMax && vals[v] < acc {
				acc = vals[v]
			}
		}
		vals[agg.target] = acc
	}

	// 变量边界与全部约束的完整检查
	for i, info := range m.vars {
		if vals[i] < info.lo || vals[i] > info.hi {
			return
		}
	}
	for _, c := range m.cons {
		sum := int64(0)
		for _, t := range c.terms {
			sum += t.Coeff * vals[t.Var]
		}
		if sum < c.lo || sum > c.hi {
			return
		}
	}

	if !m.hasObjective {
		m.best = vals
		m.found = true
		m.complete = true
		return
	}

	obj := int64(0)
	for _, t := range m.objective {
		obj += t.Coeff * vals[t.Var]
	}
	if !m.found || obj < m.bestObj {
		m.found = true
		m.bestObj = obj
		m.best = vals
	}
}
