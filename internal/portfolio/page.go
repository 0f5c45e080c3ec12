// Package portfolio renders the public single-page portfolio from its
// static HTML shell.
package portfolio

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
)

// Placeholders replaced in index.html.
const (
	RecruiterPlaceholder = "{{RECRUITER_MODE_HTML}}"
	ProfilePlaceholder   = "{{PROFILE_IMG_B64}}"
	ResumePlaceholder    = "{{RESUME_PDF}}"
	GeminiPlaceholder    = "{{GEMINI_API_KEY}}"
	DeepgramPlaceholder  = "{{DEEPGRAM_API_KEY}}"
)

// profileMaxSide bounds the embedded profile photo.
const profileMaxSide = 800

var downloadAttr = regexp.MustCompile(`download="[^"]*\.pdf"`)

const resumeMissingAttr = `onclick="alert('Resume file not found on server.')"`

type Site struct {
	Dir            string
	ProfileImage   string
	ResumePDF      string
	GeminiAPIKey   string
	DeepgramAPIKey string
}

// NewSite lays out the default asset locations under staticDir.
func NewSite(dir, staticDir, geminiKey, deepgramKey string) Site {
	return Site{
		Dir:            dir,
		ProfileImage:   filepath.Join(staticDir, "assets", "images", "Deepu.JPG"),
		ResumePDF:      filepath.Join(staticDir, "assets", "PDF", "RESUME_LOGA DEEPAK.pdf"),
		GeminiAPIKey:   geminiKey,
		DeepgramAPIKey: deepgramKey,
	}
}

// Render reads index.html and fills in every placeholder. Only a missing
// index.html is an error; any other missing asset degrades the page.
func Render(s Site) (string, error) {
	raw, err := os.ReadFile(filepath.Join(s.Dir, "index.html"))
	if err != nil {
		return "", fmt.Errorf("reading index.html: %w", err)
	}
	html := string(raw)

	recruiter, err := os.ReadFile(filepath.Join(s.Dir, "recruiter.html"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[warn] reading recruiter.html: %v", err)
	}
	html = strings.ReplaceAll(html, RecruiterPlaceholder, string(recruiter))

	if b64, ok := profileImage(s.ProfileImage); ok {
		html = strings.ReplaceAll(html, ProfilePlaceholder, b64)
	}

	html = injectResume(html, s.ResumePDF)

	if s.GeminiAPIKey == "" {
		log.Printf("[warn] GEMINI_API_KEY not found")
	}
	html = strings.ReplaceAll(html, GeminiPlaceholder, s.GeminiAPIKey)
	html = strings.ReplaceAll(html, DeepgramPlaceholder, s.DeepgramAPIKey)
	return html, nil
}

// profileImage returns the photo as base64, auto-oriented and fit within
// profileMaxSide. Files imaging cannot decode are embedded as they are.
func profileImage(path string) (string, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		log.Printf("[warn] embedding %s unresized: %v", path, err)
		return base64.StdEncoding.EncodeToString(raw), true
	}
	img = imaging.Fit(img, profileMaxSide, profileMaxSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		log.Printf("[warn] embedding %s unresized: %v", path, err)
		return base64.StdEncoding.EncodeToString(raw), true
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), true
}

func injectResume(html, path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("[warn] resume PDF not found at %s", path)
			// keep the browser from saving the page itself as the PDF
			if loc := downloadAttr.FindStringIndex(html); loc != nil {
				html = html[:loc[0]] + resumeMissingAttr + html[loc[1]:]
			}
		} else {
			log.Printf("[error] reading resume pdf: %v", err)
		}
		return strings.ReplaceAll(html, ResumePlaceholder, "#")
	}
	uri := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(raw)
	log.Printf("[info] resume injected from %s", path)
	return strings.ReplaceAll(html, ResumePlaceholder, uri)
}
