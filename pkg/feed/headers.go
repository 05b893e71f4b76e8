package feed

import "net/http"

// addFeedHeaders adds browser-like headers for feed fetching.
// Search feed endpoints are also served to browsers, so we want to look
// legitimate and avoid cached copies.
func addFeedHeaders(req *http.Request, lang string) {
	// accept header for feeds - include both RSS and HTML
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,text/html;q=0.7,*/*;q=0.5")
	req.Header.Set("Cache-Control", "no-cache")

	if lang == "" {
		lang = "en"
	}
	req.Header.Set("Accept-Language", lang+";q=0.9")
	req.Header.Set("Connection", "keep-alive")
}
