package game

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/bellapacxx/tambola-backend/models"
)

const (
	ticketNumbers = 15
	ticketRows    = 3
	ticketColumns = 9
	rowNumbers    = 5
	maxPerColumn  = 3
)

// columnRange returns the inclusive number range for a ticket column.
func columnRange(col int) (int, int) {
	lo := col*10 + 1
	hi := col*10 + 10
	if col == ticketColumns-1 {
		hi = 90
	}
	return lo, hi
}

// GenerateTicket produces a tambola ticket: 15 numbers over a 3x9 grid,
// 5 per row, at most 3 per column, each column ascending top to bottom.
// Greedy row placement occasionally cannot reach exactly 5 numbers per
// row, in which case the whole attempt is thrown away and regenerated.
func GenerateTicket() *models.Card {
	for {
		if grid, ok := tryGenerateGrid(); ok {
			return &models.Card{ID: uuid.NewString(), Grid: grid}
		}
	}
}

func tryGenerateGrid() ([3][9]int, bool) {
	var grid [3][9]int

	counts := allocateColumnCounts()

	// Draw each column's numbers and sort ascending.
	var colNums [ticketColumns][]int
	for c := 0; c < ticketColumns; c++ {
		if counts[c] == 0 {
			continue
		}
		lo, hi := columnRange(c)
		perm := rand.Perm(hi - lo + 1)
		nums := make([]int, counts[c])
		for i := range nums {
			nums[i] = lo + perm[i]
		}
		sort.Ints(nums)
		colNums[c] = nums
	}

	// Place columns in random order, always onto the currently least
	// filled rows, so rows converge to 5 numbers each.
	var rowFill [ticketRows]int
	for _, c := range rand.Perm(ticketColumns) {
		k := len(colNums[c])
		if k == 0 {
			continue
		}

		rows := leastFilledRows(rowFill, k)
		if rows == nil {
			return grid, false
		}
		sort.Ints(rows) // ascending numbers go top to bottom
		for i, r := range rows {
			grid[r][c] = colNums[c][i]
			rowFill[r]++
		}
	}

	for r := 0; r < ticketRows; r++ {
		if rowFill[r] != rowNumbers {
			return grid, false
		}
	}
	return grid, true
}

// allocateColumnCounts spreads the 15 numbers over the 9 columns, at most
// 3 per column, by repeatedly picking a random column with spare capacity.
func allocateColumnCounts() [ticketColumns]int {
	var counts [ticketColumns]int
	allocated := 0
	for allocated < ticketNumbers {
		c := rand.Intn(ticketColumns)
		if counts[c] < maxPerColumn {
			counts[c]++
			allocated++
		}
	}
	return counts
}

// leastFilledRows picks the k rows with the lowest fill that still have
// space, randomizing ties. Returns nil when fewer than k rows qualify.
func leastFilledRows(rowFill [ticketRows]int, k int) []int {
	eligible := make([]int, 0, ticketRows)
	for r := 0; r < ticketRows; r++ {
		if rowFill[r] < rowNumbers {
			eligible = append(eligible, r)
		}
	}
	if len(eligible) < k {
		return nil
	}

	rand.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	sort.SliceStable(eligible, func(i, j int) bool {
		return rowFill[eligible[i]] < rowFill[eligible[j]]
	})
	return eligible[:k]
}
