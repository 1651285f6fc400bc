package auctions

type CreateAuctionRequestBody struct {
	PlayerID   string `json:"player_id"`
	CurrentBid int64  `json:"current_bid"`
}

type CreateAuctionLogRequestBody struct {
	PlayerID string `json:"player_id"`
	TeamID   string `json:"team_id"`
	Price    int64  `json:"price"`
}
