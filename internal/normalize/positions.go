package normalize

import "github.com/omarshaarawi/coachbrief/internal/models"

var positionsByID = map[int]models.Position{
	1:  models.PositionQB,
	2:  models.PositionRB,
	3:  models.PositionWR,
	4:  models.PositionTE,
	5:  models.PositionK,
	16: models.PositionDST,
}

// PositionLabel maps a provider defaultPositionId to its label.
func PositionLabel(positionID int) models.Position {
	if pos, ok := positionsByID[positionID]; ok {
		return pos
	}
	return models.PositionUnknown
}

// ParsePosition accepts either a label ("WR", "D/ST", "DST") or a
// provider position id ("3").
func ParsePosition(s string) (models.Position, bool) {
	switch s {
	case "QB", "1":
		return models.PositionQB, true
	case "RB", "2":
		return models.PositionRB, true
	case "WR", "3":
		return models.PositionWR, true
	case "TE", "4":
		return models.PositionTE, true
	case "K", "5":
		return models.PositionK, true
	case "D/ST", "DST", "D-ST", "16":
		return models.PositionDST, true
	}
	return "", false
}

var proTeams = map[int]string{
	1: "ATL", 2: "BUF", 3: "CHI", 4: "CIN", 5: "CLE", 6: "DAL", 7: "DEN", 8: "DET",
	9: "GB", 10: "TEN", 11: "IND", 12: "KC", 13: "LV", 14: "LAR", 15: "MIA", 16: "MIN",
	17: "NE", 18: "NO", 19: "NYG", 20: "NYJ", 21: "PHI", 22: "ARI", 23: "PIT", 24: "LAC",
	25: "SF", 26: "SEA", 27: "TB", 28: "WSH", 29: "CAR", 30: "JAX", 33: "BAL", 34: "HOU",
}

func proTeamAbbrev(p models.Player) string {
	if p.ProTeamAbbreviation != "" {
		return p.ProTeamAbbreviation
	}
	return proTeams[p.ProTeamID]
}
