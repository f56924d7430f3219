package translateplus

// Translation carries one translated text together with the source and
// target language codes the server used.
type Translation struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
	Source      string `json:"source"`
	Target      string `json:"target"`
}

// TranslationResult is the response of the single-translate endpoint.
type TranslationResult struct {
	Translations Translation `json:"translations"`
}

// BatchItem is one entry of a server-side batch translation. A failed
// item carries Success=false and an error message; it never invalidates
// the surrounding batch.
type BatchItem struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// BatchTranslationResult is the response of the batch endpoint.
// Total always equals Successful + Failed.
type BatchTranslationResult struct {
	Translations []BatchItem `json:"translations"`
	Total        int         `json:"total"`
	Successful   int         `json:"successful"`
	Failed       int         `json:"failed"`
}

// HTMLTranslation is the response of the HTML endpoint. Tags and
// structure of the input are preserved by the server.
type HTMLTranslation struct {
	HTML   string `json:"html"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// EmailTranslation is the response of the email endpoint.
type EmailTranslation struct {
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
	Source   string `json:"source"`
	Target   string `json:"target"`
}

// SubtitleTranslation is the response of the subtitle endpoint.
type SubtitleTranslation struct {
	Content string `json:"content"`
	Format  string `json:"format"`
	Source  string `json:"source"`
	Target  string `json:"target"`
}

// DetectedLanguage is the detection payload for one text.
type DetectedLanguage struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// LanguageDetection is the response of the detect endpoint.
type LanguageDetection struct {
	LanguageDetection DetectedLanguage `json:"language_detection"`
}

// SupportedLanguages maps language codes to display names.
type SupportedLanguages struct {
	Languages map[string]string `json:"languages"`
}

// AccountSummary describes the account's remaining credits, plan and
// usage as reported by the server.
type AccountSummary struct {
	CreditsRemaining int64                  `json:"credits_remaining"`
	Plan             string                 `json:"plan"`
	Usage            map[string]interface{} `json:"usage,omitempty"`
}
