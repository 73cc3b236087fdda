package api

type Finding struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Resource string `json:"resource"`
	Message  string `json:"message"`
}

type Posture struct {
	Score    int       `json:"score"`
	Posture  string    `json:"posture"`
	Findings []Finding `json:"findings"`
	Critical int       `json:"critical"`
	High     int       `json:"high"`
	Medium   int       `json:"medium"`
	Low      int       `json:"low"`
}
