package model

// Newsletter is one issue to deliver to every confirmed subscriber.
type Newsletter struct {
	Title       string
	TextContent string
	HTMLContent string
}
