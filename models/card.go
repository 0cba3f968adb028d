package models

// Card is a tambola ticket: 3 rows x 9 columns, 15 numbers total.
// A zero cell is blank. Column c holds numbers from c*10+1 up to c*10+10,
// except the last column which runs through 90. The grid is the single
// canonical representation; anything that needs a flat view goes through
// Numbers or Contains instead of reinterpreting the grid itself.
type Card struct {
	ID   string    `json:"id"`
	Grid [3][9]int `json:"grid"`
}

// Numbers returns every number on the card, row by row.
func (c *Card) Numbers() []int {
	out := make([]int, 0, 15)
	for r := 0; r < 3; r++ {
		for col := 0; col < 9; col++ {
			if n := c.Grid[r][col]; n != 0 {
				out = append(out, n)
			}
		}
	}
	return out
}

// Contains reports whether n appears on the card.
func (c *Card) Contains(n int) bool {
	if n < 1 || n > 90 {
		return false
	}
	for r := 0; r < 3; r++ {
		for col := 0; col < 9; col++ {
			if c.Grid[r][col] == n {
				return true
			}
		}
	}
	return false
}

// RowNumbers returns the non-blank numbers of one row.
func (c *Card) RowNumbers(row int) []int {
	out := make([]int, 0, 5)
	for col := 0; col < 9; col++ {
		if n := c.Grid[row][col]; n != 0 {
			out = append(out, n)
		}
	}
	return out
}
