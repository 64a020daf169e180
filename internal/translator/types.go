package translator

import "github.com/pricofy/batch-translator/internal/domain"

// request is the messages-API body understood by Nova models.
type request struct {
	Messages        []message       `json:"messages"`
	InferenceConfig inferenceConfig `json:"inferenceConfig"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Text *string `json:"text,omitempty"`
}

type inferenceConfig struct {
	MaxNewTokens int `json:"max_new_tokens"`
}

type response struct {
	Output *struct {
		Message *message `json:"message"`
	} `json:"output"`
	StopReason string `json:"stopReason,omitempty"`
}

func newRequest(job domain.Job, maxNewTokens int) request {
	prompt := Prompt(job.Text, job.SourceLang, job.TargetLang)
	return request{
		Messages: []message{
			{Role: "user", Content: []contentBlock{{Text: &prompt}}},
		},
		InferenceConfig: inferenceConfig{MaxNewTokens: maxNewTokens},
	}
}
