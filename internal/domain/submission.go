package domain

import "strings"

type SubmissionPayload struct {
	WebsiteURL *string
	GithubURL  *string
	Email      string
	Prompt     string
}

func NewSubmissionPayload(websiteURL, githubURL, email, prompt string) SubmissionPayload {
	return SubmissionPayload{
		WebsiteURL: optionalString(websiteURL),
		GithubURL:  optionalString(githubURL),
		Email:      email,
		Prompt:     strings.TrimSpace(prompt),
	}
}

// Validate enforces that at least one scan source is present.
func (p SubmissionPayload) Validate() error {
	if p.WebsiteURL == nil && p.GithubURL == nil {
		return &ValidationError{Field: "source", Err: ErrMissingSource}
	}
	if strings.TrimSpace(p.Email) == "" {
		return &ValidationError{Field: "email", Err: ErrNotAuthenticated}
	}

	return nil
}

func optionalString(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
