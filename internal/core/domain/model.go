package domain

// ModelRequest is one prompt for the LLM provider, with an optional binary
// attachment forwarded alongside the text.
type ModelRequest struct {
	Prompt     string
	Attachment *Attachment
}

type Attachment struct {
	MimeType string
	Data     []byte
}
