package datastore

// RecomputeTeamStats returns team with its derived fields rebuilt from the
// current player set: players count, total points, total spent (nil sold
// prices count as zero) and remaining budget clamped at zero. Pure and
// idempotent; both store implementations funnel every team write through it
// or its SQL equivalent.
func RecomputeTeamStats(team Team, players []Player) Team {
	var spent int64
	var count, points int

	for _, p := range players {
		if p.TeamID == nil || *p.TeamID != team.TeamID {
			continue
		}
		count++
		points += p.Points
		if p.SoldPrice != nil {
			spent += *p.SoldPrice
		}
	}

	team.PlayersCount = count
	team.TotalPoints = points
	team.TotalSpent = spent

	remaining := team.Budget - spent
	if remaining < 0 {
		remaining = 0
	}
	team.RemainingBudget = remaining

	return team
}
