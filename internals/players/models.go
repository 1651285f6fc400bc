package players

import "github.com/nilami/api-server/pkg/datastore"

type CreatePlayerRequestBody struct {
	Name      string                 `json:"name"`
	Role      datastore.PlayerRole   `json:"role"`
	Country   string                 `json:"country"`
	Age       int                    `json:"age"`
	Matches   int                    `json:"matches"`
	Runs      int                    `json:"runs"`
	Wickets   int                    `json:"wickets"`
	Catches   int                    `json:"catches"`
	Points    int                    `json:"points"`
	BasePrice int64                  `json:"base_price"`
	Pool      string                 `json:"pool"`
	Status    datastore.PlayerStatus `json:"status"`
	SoldPrice *int64                 `json:"sold_price"`
	TeamID    *string                `json:"team_id"`
}

// ListFilters narrows GET /api/players. Empty fields match everything.
type ListFilters struct {
	Status string
	Role   string
	Pool   string
}
