package entity

// Stats are a user's accumulated results for one game.
type Stats struct {
	Wins   int64 `json:"wins"`
	Losses int64 `json:"losses"`
	Draws  int64 `json:"draws"`
}
