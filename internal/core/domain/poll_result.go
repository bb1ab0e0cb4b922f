package domain

// PollResults is the read-side tally for one poll: every declared option
// appears as a key, options without votes count zero.
type PollResults struct {
	Poll       *Poll            `json:"votacion"`
	Results    map[string]int64 `json:"resultados"`
	TotalVotes int64            `json:"total_votos"`
}
