package translateplus

import (
	"context"

	"golang.org/x/text/language"
)

// SubtitleFormat identifies a subtitle file format accepted by the API.
type SubtitleFormat string

const (
	SubtitleSRT SubtitleFormat = "srt"
	SubtitleVTT SubtitleFormat = "vtt"
)

// maxBatchTexts is the server-side limit per batch request.
const maxBatchTexts = 100

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type batchTranslateRequest struct {
	Texts  []string `json:"texts"`
	Source string   `json:"source"`
	Target string   `json:"target"`
}

type htmlTranslateRequest struct {
	HTML   string `json:"html"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type emailTranslateRequest struct {
	Subject   string `json:"subject"`
	EmailBody string `json:"email_body"`
	Source    string `json:"source"`
	Target    string `json:"target"`
}

type subtitleTranslateRequest struct {
	Content string `json:"content"`
	Format  string `json:"format"`
	Source  string `json:"source"`
	Target  string `json:"target"`
}

type detectRequest struct {
	Text string `json:"text"`
}

// Translate translates a single text
//
// ctx: Context for the request
// text: Text to translate
// source: Source language code, empty for auto-detect
// target: Target language code (required)
//
// Example:
//
//	result, err := client.Translate(ctx, "Hello", "en", "fr")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Translations.Translation) // "Bonjour"
func (c *Client) Translate(ctx context.Context, text, source, target string) (*TranslationResult, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, newValidationError("text is required")
	}
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	payload := translateRequest{
		Text:   text,
		Source: normalizeSource(source),
		Target: target,
	}
	var out TranslationResult
	if err := c.transport.postJSON(ctx, "/v2/translate", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TranslateBatch translates multiple texts in a single server-side
// request. The server reports per-item success flags and aggregate
// counts; one item's failure never fails the batch.
//
// texts: 1 to 100 texts per request
func (c *Client) TranslateBatch(ctx context.Context, texts []string, source, target string) (*BatchTranslationResult, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, newValidationError("texts list cannot be empty")
	}
	if len(texts) > maxBatchTexts {
		return nil, newValidationError("maximum %d texts allowed per batch request", maxBatchTexts)
	}
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	payload := batchTranslateRequest{
		Texts:  texts,
		Source: normalizeSource(source),
		Target: target,
	}
	var out BatchTranslationResult
	if err := c.transport.postJSON(ctx, "/v2/translate/batch", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TranslateHTML translates HTML content while preserving all tags and
// structure.
func (c *Client) TranslateHTML(ctx context.Context, html, source, target string) (*HTMLTranslation, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if html == "" {
		return nil, newValidationError("html is required")
	}
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	payload := htmlTranslateRequest{
		HTML:   html,
		Source: normalizeSource(source),
		Target: target,
	}
	var out HTMLTranslation
	if err := c.transport.postJSON(ctx, "/v2/translate/html", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TranslateEmail translates an email subject and HTML body.
func (c *Client) TranslateEmail(ctx context.Context, subject, emailBody, source, target string) (*EmailTranslation, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if subject == "" && emailBody == "" {
		return nil, newValidationError("subject or email body is required")
	}
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	payload := emailTranslateRequest{
		Subject:   subject,
		EmailBody: emailBody,
		Source:    normalizeSource(source),
		Target:    target,
	}
	var out EmailTranslation
	if err := c.transport.postJSON(ctx, "/v2/translate/email", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TranslateSubtitles translates subtitle content in SRT or VTT format.
func (c *Client) TranslateSubtitles(ctx context.Context, content string, format SubtitleFormat, source, target string) (*SubtitleTranslation, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if content == "" {
		return nil, newValidationError("content is required")
	}
	if format != SubtitleSRT && format != SubtitleVTT {
		return nil, newValidationError("format must be %q or %q", SubtitleSRT, SubtitleVTT)
	}
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	payload := subtitleTranslateRequest{
		Content: content,
		Format:  string(format),
		Source:  normalizeSource(source),
		Target:  target,
	}
	var out SubtitleTranslation
	if err := c.transport.postJSON(ctx, "/v2/translate/subtitles", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DetectLanguage detects the language of a text server-side.
func (c *Client) DetectLanguage(ctx context.Context, text string) (*LanguageDetection, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, newValidationError("text is required")
	}

	var out LanguageDetection
	if err := c.transport.postJSON(ctx, "/v2/language/detect", detectRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSupportedLanguages returns the languages the API can translate
// between. The call mutates no client state.
func (c *Client) GetSupportedLanguages(ctx context.Context) (*SupportedLanguages, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	var out SupportedLanguages
	if err := c.transport.getJSON(ctx, "/v2/language/supported", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAccountSummary returns the account's credits, plan and usage.
func (c *Client) GetAccountSummary(ctx context.Context) (*AccountSummary, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	var out AccountSummary
	if err := c.transport.getJSON(ctx, "/v2/user/account", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// normalizeSource maps an empty source to server-side auto-detection.
func normalizeSource(source string) string {
	if source == "" {
		return "auto"
	}
	return source
}

// validateTarget rejects empty or unparseable target language codes
// before any network call.
func validateTarget(target string) error {
	if target == "" {
		return newValidationError("target language is required")
	}
	if _, err := language.Parse(target); err != nil {
		return newValidationError("invalid target language code %q", target)
	}
	return nil
}
