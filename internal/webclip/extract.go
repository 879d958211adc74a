package webclip

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

var excessiveLinesRe = regexp.MustCompile(`\n{4,}`)

// Clip is the capture-ready form of a web page.
type Clip struct {
	Title string
	Body  string
}

// Extractor fetches a URL and reduces it to a title and markdown body.
type Extractor struct {
	fetcher   *Fetcher
	converter *md.Converter
}

// NewExtractor creates an Extractor with its own fetcher.
func NewExtractor() *Extractor {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	return &Extractor{
		fetcher:   NewFetcher(),
		converter: converter,
	}
}

// Extract fetches the page and returns its readable title and body. The
// body is the readability-extracted article converted to markdown; when
// readability finds nothing, the whole page is converted instead.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Clip, error) {
	raw, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	return e.extractFromHTML(raw, rawURL)
}

func (e *Extractor) extractFromHTML(raw []byte, rawURL string) (*Clip, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}

	title := ""
	content := string(raw)

	article, err := readability.FromReader(bytes.NewReader(raw), pageURL)
	if err == nil {
		title = strings.TrimSpace(article.Title)
		if article.Content != "" {
			content = article.Content
		}
	}

	if title == "" {
		title = htmlTitle(raw)
	}
	if title == "" {
		title = pageURL.Hostname()
	}

	body, err := e.converter.ConvertString(content)
	if err != nil {
		return nil, fmt.Errorf("converting page to markdown: %w", err)
	}

	body = strings.TrimSpace(excessiveLinesRe.ReplaceAllString(body, "\n\n\n"))
	if body == "" {
		return nil, fmt.Errorf("page has no extractable text")
	}

	return &Clip{Title: title, Body: body}, nil
}

// htmlTitle returns the <title> element text, or "".
func htmlTitle(raw []byte) string {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	var title string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)

			return
		}

		for c := n.FirstChild; c != nil && title == ""; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title
}
