package news

const DefaultThumbnail = "default-thumbnail.png"

type Item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

type proxyResponse struct {
	Contents string `json:"contents"`
}
