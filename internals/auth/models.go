package auth

type LoginRequestBody struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}
