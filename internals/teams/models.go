package teams

type CreateTeamRequestBody struct {
	Name   string `json:"name"`
	Budget int64  `json:"budget"`
}
