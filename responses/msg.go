package responses

type Message struct {
	Type    string `json:"type"` // "error", "ok"
	Message string `json:"message"`
	Code    int    `json:"code"` // application-level logic code
}

// Application-level codes carried in Message.Code
const (
	CodeNone = iota
	CodeInvalidRecord
	CodeInvalidInput
	CodeLogoTooLarge
	CodeLogoNotImage
	CodeNotFound
	CodeBusy
	CodeThrottled
	CodeRenderFailed
	CodeInvalidToken
)
