package entity

// Positions a player can be matched on.
const (
	PositionGK    = "GK"
	PositionDF    = "DF"
	PositionMF    = "MF"
	PositionFW    = "FW"
	PositionStaff = "STAFF"
)

var categoryPositions = map[Category]string{
	Enhancement:    PositionGK,
	Emission:       PositionFW,
	Transmutation:  PositionMF,
	Manipulation:   PositionDF,
	Conjuration:    PositionMF,
	Specialization: PositionStaff,
}

// PositionFor returns the pitch position associated with c. Unknown
// categories map to MF.
func PositionFor(c Category) string {
	if p, ok := categoryPositions[c]; ok {
		return p
	}
	return PositionMF
}

// PlayerDiagnosis is an indexed player together with their diagnosis.
type PlayerDiagnosis struct {
	PlayerID  int       `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Diagnosis Diagnosis `json:"diagnosis"`
}

// PlayerMatch is the closest indexed player to a diagnosis.
type PlayerMatch struct {
	PlayerID        int      `json:"id"`
	Name            string   `json:"name"`
	Position        string   `json:"position"`
	Primary         Category `json:"primary"`
	SpecialistScore int      `json:"specialist_score"`
	Comment         string   `json:"comment"`
	Distance        float32  `json:"distance"`
}
