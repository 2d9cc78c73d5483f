// Package prompt renders the text sent to the generation model.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"
)

// diffLimit bounds how much diff text is interpolated into a prompt.
// Larger diffs are truncated on a UTF-8 boundary with a marker.
const diffLimit = 4000

const truncationMarker = "\n...(diff is too long, truncated)"

var languageNames = map[string]string{
	"pt": "Portuguese",
	"en": "English",
}

// LanguageName maps a locale code to the natural-language name used in
// the commit prompt. Unrecognized codes fall back to English.
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(strings.TrimSpace(code))]; ok {
		return name
	}
	return "English"
}

// Data is what the templates interpolate.
type Data struct {
	Language string
	Diff     string
}

const commitTemplate = `Generate a concise, meaningful commit message in {{.Language}}, following the Conventional Commits standard (e.g. 'feat: add new feature X', 'fix: correct bug Y', 'docs: update documentation Z', 'style: format code', 'refactor: restructure component A', 'test: add tests for B', 'chore: update dependencies').

The first line (title) must be at most 72 characters and clearly describe the changes in the following git diff:

{{.Diff}}

Generated commit message:`

const branchTemplate = `Generate a short git branch name in kebab-case (lowercase words separated by hyphens) describing the changes in the following git diff. Prefix it with the most fitting conventional commit type and a slash when one applies (e.g. 'feat/add-login-form', 'fix/null-pointer-on-save').

Respond with the branch name only, no explanation, no quotes.

{{.Diff}}

Generated branch name:`

// CommitMessage renders the commit-message prompt. An override
// template (see LoadTemplate) replaces the built-in one when given.
func CommitMessage(language, diff, override string) (string, error) {
	tmpl := commitTemplate
	if override != "" {
		tmpl = override
	}
	return render("commit", tmpl, Data{
		Language: LanguageName(language),
		Diff:     TruncateDiff(diff),
	})
}

// BranchName renders the branch-name prompt.
func BranchName(diff string) (string, error) {
	return render("branch", branchTemplate, Data{Diff: TruncateDiff(diff)})
}

func render(name, tmpl string, data Data) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("invalid %s prompt template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("unable to render %s prompt: %w", name, err)
	}
	return buf.String(), nil
}

// TruncateDiff caps the diff at diffLimit bytes without splitting a
// multi-byte rune.
func TruncateDiff(diff string) string {
	if len(diff) <= diffLimit {
		return diff
	}

	cut := diffLimit
	for cut > 0 && !utf8.RuneStart(diff[cut]) {
		cut--
	}
	return diff[:cut] + truncationMarker
}
