package api

type Error struct {
	Error string `json:"error"`
}

type Message struct {
	Message string `json:"message"`
}
