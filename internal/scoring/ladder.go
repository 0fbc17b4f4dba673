package scoring

// step awards points once a value crosses threshold.
type step struct {
	threshold float64
	points    int
}

// ladder is a threshold table evaluated top-down; the first step the value
// satisfies wins, otherwise floor is awarded. NaN satisfies no step.
type ladder struct {
	steps         []step
	floor         int
	lowerIsBetter bool
}

func atLeast(floor int, steps ...step) ladder {
	return ladder{steps: steps, floor: floor}
}

func atMost(floor int, steps ...step) ladder {
	return ladder{steps: steps, floor: floor, lowerIsBetter: true}
}

func (l ladder) points(value float64) int {
	for _, s := range l.steps {
		if l.lowerIsBetter {
			if value <= s.threshold {
				return s.points
			}
			continue
		}
		if value >= s.threshold {
			return s.points
		}
	}
	return l.floor
}

func clampPoints(points, limit int) int {
	if points < 0 {
		return 0
	}
	if points > limit {
		return limit
	}
	return points
}

// band maps a minimum total score to a recommendation.
type band struct {
	minScore       int
	recommendation Recommendation
}

func classify(bands []band, fallback Recommendation, score int) Recommendation {
	for _, b := range bands {
		if score >= b.minScore {
			return b.recommendation
		}
	}
	return fallback
}

func probability(score int) float64 {
	return float64(score) / MaxScore
}
