package engine

import "github.com/shopspring/decimal"

// Accumulator bonus percentages by bonus-eligible selection count.
// Counts above the table use the ceiling value; the caller never
// applies a bonus below minBonusSelections.
const minBonusSelections = 3

var accumulatorBonusTable = []int64{
	3:  3,
	4:  5,
	5:  7,
	6:  10,
	7:  12,
	8:  15,
	9:  20,
	10: 25,
	11: 30,
	12: 35,
	13: 40,
	14: 50,
	15: 60,
	16: 70,
}

// AccumulatorBonusPercent maps a bonus-eligible selection count to its
// bonus percentage. Counts below 3 yield zero.
func AccumulatorBonusPercent(eligible int) decimal.Decimal {
	if eligible < minBonusSelections {
		return decimal.Zero
	}
	if eligible >= len(accumulatorBonusTable) {
		eligible = len(accumulatorBonusTable) - 1
	}
	return decimal.NewFromInt(accumulatorBonusTable[eligible])
}
