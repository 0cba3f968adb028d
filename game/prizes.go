package game

import "github.com/bellapacxx/tambola-backend/models"

// Prize kinds, keyed into Room winners. Each goes to the first player to
// reach it and is never reassigned.
const (
	PrizeFirstRow  = "firstRow"
	PrizeSecondRow = "secondRow"
	PrizeThirdRow  = "thirdRow"
	PrizeFullHouse = "fullHouse"
)

const (
	rowPrizeScore       = 20
	fullHousePrizeScore = 40
)

var rowPrizes = [3]string{PrizeFirstRow, PrizeSecondRow, PrizeThirdRow}

// RowPrize maps a row index to its prize kind.
func RowPrize(row int) string {
	return rowPrizes[row]
}

// RowsCompleted reports, per row, whether every number in that row has
// been marked.
func RowsCompleted(card *models.Card, marked map[int]bool) [3]bool {
	var done [3]bool
	for r := 0; r < 3; r++ {
		done[r] = true
		for _, n := range card.RowNumbers(r) {
			if !marked[n] {
				done[r] = false
				break
			}
		}
	}
	return done
}

// IsFullHouse reports whether every number on the card has been marked.
func IsFullHouse(card *models.Card, marked map[int]bool) bool {
	for _, n := range card.Numbers() {
		if !marked[n] {
			return false
		}
	}
	return true
}

// Score computes a player's score from their completed prizes.
func Score(rows [3]bool, fullHouse bool) int {
	score := 0
	for _, done := range rows {
		if done {
			score += rowPrizeScore
		}
	}
	if fullHouse {
		score += fullHousePrizeScore
	}
	return score
}
