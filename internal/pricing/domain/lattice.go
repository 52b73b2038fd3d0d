package domain

// Lattice 重组二叉树的稠密三角存储
// 节点 (i, j) 表示经过 j 步、其中上行 i 次后的取值（0 ≤ i ≤ j）。
// u·d = 1 保证路径无关，节点仅由下标运算定位，无需指针结构。
type Lattice struct {
	periods int
	cells   []float64
}

// NewLattice 分配 (periods+1) × (periods+1) 的网格，初值为零
func NewLattice(periods int) *Lattice {
	n := periods + 1
	return &Lattice{
		periods: periods,
		cells:   make([]float64, n*n),
	}
}

// Periods 网格的步数
func (l *Lattice) Periods() int { return l.periods }

// At 读取节点 (i, j) 的值
func (l *Lattice) At(i, j int) float64 {
	return l.cells[i*(l.periods+1)+j]
}

// Set 写入节点 (i, j) 的值
func (l *Lattice) Set(i, j int, v float64) {
	l.cells[i*(l.periods+1)+j] = v
}

// Column 返回第 j 步所有节点的值（i = 0..j）
func (l *Lattice) Column(j int) []float64 {
	col := make([]float64, j+1)
	for i := 0; i <= j; i++ {
		col[i] = l.At(i, j)
	}
	return col
}

// Clone 深拷贝网格
func (l *Lattice) Clone() *Lattice {
	cells := make([]float64, len(l.cells))
	copy(cells, l.cells)
	return &Lattice{periods: l.periods, cells: cells}
}
