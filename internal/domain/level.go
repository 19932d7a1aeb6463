package domain

// Study levels band a day's accumulated minutes:
//
//	0: under 20 minutes
//	1: 20–40
//	2: 41–90
//	3: 91–180
//	4: 181 and up
const MaxLevel = 4

// Level maps accumulated study minutes to a band in [0,MaxLevel].
// Thresholds are inclusive lower bounds, checked highest-first.
// It is the only place a level may be derived from minutes.
func Level(totalMinutes int) int {
	switch {
	case totalMinutes >= 181:
		return 4
	case totalMinutes >= 91:
		return 3
	case totalMinutes >= 41:
		return 2
	case totalMinutes >= 20:
		return 1
	default:
		return 0
	}
}
